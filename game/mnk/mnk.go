package mnk

import (
	"fmt"

	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
)

var (
	Cross  = game.Player(game.Black)
	Nought = game.Player(game.White)
)

var _ game.State = &MNK{}

// MNK is a representation of M,N,K games - a game is played on a MxN board. K moves to win.
//
// Unlike c4, a drawn MNK game reports a plain 0 as its result.
type MNK struct {
	board   []game.Colour
	m, n, k int

	nextToMove game.Player
	moveCount  int
}

// New creates a new MNK game
func New(m, n, k int) *MNK {
	return &MNK{
		board:      make([]game.Colour, m*n),
		m:          m,
		n:          n,
		k:          k,
		nextToMove: Cross,
	}
}

// TicTacToe creates a new MNK game for Tic Tac Toe
func TicTacToe() *MNK { return New(3, 3, 3) }

func (g *MNK) Format(s fmt.State, c rune) {
	for i, c := range g.board {
		if i%g.n == 0 {
			fmt.Fprint(s, "⎢ ")
		}
		fmt.Fprintf(s, "%s ", c)
		if (i+1)%g.n == 0 && i != 0 {
			fmt.Fprint(s, "⎥\n")
		}
	}
}

func (g *MNK) BoardSize() (int, int) { return g.m, g.n }
func (g *MNK) Board() []game.Colour  { return g.board }

func (g *MNK) ActionSpace() int { return g.m * g.n }

func (g *MNK) SetToMove(p game.Player) { g.nextToMove = p }

func (g *MNK) ToMove() game.Player { return g.nextToMove }

func (g *MNK) MoveNumber() int { return g.moveCount + 1 }

func (g *MNK) Check(m game.Single) bool {
	if int(m) < 0 || int(m) >= len(g.board) {
		return false
	}
	return g.board[int(m)] == game.None
}

// LegalActions returns the empty cells in row major order.
func (g *MNK) LegalActions() []game.Single {
	if g.Ended() {
		return nil
	}
	var retVal []game.Single
	for i, c := range g.board {
		if c == game.None {
			retVal = append(retVal, game.Single(i))
		}
	}
	return retVal
}

func (g *MNK) Apply(m game.Single) error {
	if !g.Check(m) {
		return errors.Errorf("%v cannot play %d", g.nextToMove, m)
	}
	g.board[int(m)] = game.Colour(g.nextToMove)
	g.moveCount++
	g.nextToMove = g.nextToMove.Opponent()
	return nil
}

// Ended checks if the game has ended.
func (g *MNK) Ended() bool {
	if g.winner() != game.None {
		return true
	}
	for _, c := range g.board {
		if c == game.None {
			return false
		}
	}
	return true
}

// Result returns the winner's sign, or 0 for a draw or an unfinished game.
func (g *MNK) Result() game.Result { return game.Result(g.winner()) }

func (g *MNK) Reset() {
	for i := range g.board {
		g.board[i] = game.None
	}
	g.moveCount = 0
	g.nextToMove = Cross
}

func (g *MNK) Clone() game.State {
	retVal := New(g.m, g.n, g.k)
	copy(retVal.board, g.board)
	retVal.nextToMove = g.nextToMove
	retVal.moveCount = g.moveCount
	return retVal
}

func (g *MNK) isWinner(p game.Player) bool { return g.winner() == game.Colour(p) }

// winner scans every cell for k in a row rightwards, downwards and along both diagonals.
func (g *MNK) winner() game.Colour {
	dirs := [...][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}
	for i := 0; i < g.m; i++ {
		for j := 0; j < g.n; j++ {
			c := g.board[i*g.n+j]
			if c == game.None {
				continue
			}
			for _, d := range dirs {
				count := 0
				for y, x := i, j; y >= 0 && y < g.m && x >= 0 && x < g.n && g.board[y*g.n+x] == c; y, x = y+d[0], x+d[1] {
					count++
				}
				if count >= g.k {
					return c
				}
			}
		}
	}
	return game.None
}
