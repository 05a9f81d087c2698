package game

import (
	"fmt"
)

// Colour is the content of a board cell. The values double as the sign-identity
// of the player owning the cell, so that the opponent of a colour is its negation.
type Colour int32

const (
	None  Colour = 0
	Black Colour = 1
	White Colour = -1
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		switch cl {
		case None:
			fmt.Fprint(s, "·")
		case Black:
			fmt.Fprint(s, "X")
		case White:
			fmt.Fprint(s, "O")
		}
	case 'd':
		fmt.Fprintf(s, "%d", int32(cl))
	}
}

// Player represents a player. It's also a colour.
type Player Colour

// Opponent returns the other player. None is its own opponent.
func (p Player) Opponent() Player { return -p }

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Single represents a move as a single number. For column games like Connect-Four
// it is the column index; for m,n,k games it is the row-major cell index.
// 		- -1 represents "no move"
type Single int32

// Pass is the "no move" value. It is what a search returns when there is nothing to play.
const Pass Single = -1

// IsPass returns true when the coordinate represents the "no move" value
func (c Single) IsPass() bool { return c == -1 }

// Result is the outcome of an ended game as reported by State.Result.
//
// A won game reports the winner's sign (Black or White as a number).
// A drawn game reports either 0 or the reserved value Draw.
type Result float64

// Draw is a reserved result value denoting a drawn game. It is an exact value,
// not a tolerance: states that encode draws this way return exactly Draw.
const Draw Result = 1e-4

// Normalize maps the reserved Draw value to 0. Every other result is returned as is.
func (r Result) Normalize() Result {
	if r == Draw {
		return 0
	}
	return r
}

// Winner returns the player the result denotes, or None for a draw.
func (r Result) Winner() Player {
	switch r.Normalize() {
	case Result(Black):
		return Player(Black)
	case Result(White):
		return Player(White)
	}
	return Player(None)
}

// State is any game that implements these and are able to report back
type State interface {
	LegalActions() []Single // returns the moves that may be applied to the state, in a stable order
	ToMove() Player         // returns the player to move. Never None.
	Board() []Colour        // returns the cells of the board, row major

	Ended() bool    // has the game ended?
	Result() Result // result of an ended game

	// Apply plays the move for the player to move, mutating the state.
	// The required side effect is that ToMove() changes.
	Apply(m Single) error

	Clone() State
}

// MetaState is a game in progress along with its bookkeeping.
type MetaState interface {
	Name() string // name of the game
	GameNumber() int
	State() State
}

// IsEmpty returns true if every cell of the board is None.
func IsEmpty(board []Colour) bool {
	for _, c := range board {
		if c != None {
			return false
		}
	}
	return true
}
