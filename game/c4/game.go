package c4

import (
	"fmt"

	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
)

var (
	_ game.State = &Game{}
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Game is a game of Connect-Four (or any other gravity based N in a row game).
// Black moves first.
type Game struct {
	b          *Board
	nextToMove game.Player
	moveCount  int
}

//New creates a new game with a board of (rows,cols) and N to win (connect4 being 4 to win)
func New(rows, cols, N int) *Game {
	return &Game{
		b:          newBoard(rows, cols, N),
		nextToMove: game.Player(game.Black),
	}
}

// Connect4 creates a standard 6x7 game of Connect-Four.
func Connect4() *Game { return New(Rows, Columns, ToWin) }

func (g *Game) BoardSize() (int, int) { return g.b.shape() }

func (g *Game) SetToMove(p game.Player) { g.nextToMove = p }

func (g *Game) ToMove() game.Player { return g.nextToMove }

func (g *Game) MoveNumber() int { return g.moveCount + 1 }

// Check returns true if the column can take another piece.
func (g *Game) Check(m game.Single) bool { _, err := g.b.check(int(m)); return err == nil }

// LegalActions returns the columns that are not full, leftmost first. An ended game has no legal actions.
func (g *Game) LegalActions() []game.Single {
	if g.Ended() {
		return nil
	}
	_, cols := g.b.shape()
	retVal := make([]game.Single, 0, cols)
	for col := 0; col < cols; col++ {
		if g.b.it[0][col] == game.None {
			retVal = append(retVal, game.Single(col))
		}
	}
	return retVal
}

func (g *Game) Apply(m game.Single) error {
	if err := g.b.drop(int(m), game.Colour(g.nextToMove)); err != nil {
		return errors.WithMessage(err, fmt.Sprintf("%v cannot play %d", g.nextToMove, m))
	}
	g.moveCount++
	g.nextToMove = g.nextToMove.Opponent()
	return nil
}

// Winner returns the winning player, or None if there isn't one (yet).
func (g *Game) Winner() game.Player { return game.Player(g.b.checkWin()) }

func (g *Game) Ended() bool { return g.b.checkWin() != game.None || g.b.isFull() }

// Result returns the winner as a Result. A full board with no winner is a game.Draw.
func (g *Game) Result() game.Result {
	if winner := g.b.checkWin(); winner != game.None {
		return game.Result(winner)
	}
	if g.b.isFull() {
		return game.Draw
	}
	return 0
}

func (g *Game) Clone() game.State {
	return &Game{
		b:          g.b.clone(),
		nextToMove: g.nextToMove,
		moveCount:  g.moveCount,
	}
}

func (g *Game) Reset() {
	data := g.b.cells()
	for i := range data {
		data[i] = game.None
	}
	g.moveCount = 0
	g.nextToMove = game.Player(game.Black)
}

func (g *Game) ActionSpace() int { _, cols := g.b.shape(); return cols }

func (g *Game) Board() []game.Colour { return g.b.cells() }

func (g *Game) Format(s fmt.State, c rune) { g.b.Format(s, c) }
