package c4uct

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gorgonia/c4uct/game"
	"github.com/gorgonia/c4uct/mcts"
)

// Difficulty is a named iteration budget.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// OpeningMove is played on an empty board without searching: the centre column of a 7 column board.
const OpeningMove game.Single = 3

// ParseDifficulty parses a difficulty label. Labels are not case sensitive.
// An unknown label is kept as is, and searches with the default budget.
func ParseDifficulty(s string) Difficulty {
	return Difficulty(strings.ToLower(strings.TrimSpace(s)))
}

// Iterations returns the search budget of the difficulty.
func (d Difficulty) Iterations() int {
	switch d {
	case Easy:
		return 500
	case Medium:
		return 1000
	case Hard:
		return 2000
	default:
		return 1000
	}
}

// An Agent is an AI player.
type Agent struct {
	MCTS       Searcher
	Player     game.Player
	Difficulty Difficulty

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name string
}

// NewAgent creates an agent that searches with the budget of the given difficulty.
func NewAgent(name string, d Difficulty, opts ...mcts.Option) *Agent {
	conf := mcts.DefaultConfig()
	conf.Iterations = d.Iterations()
	return &Agent{
		MCTS:       mcts.New(conf, opts...),
		Difficulty: d,
		name:       name,
	}
}

func (a *Agent) Name() string { return a.name }

func (a *Agent) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "%s (%v, %s)", a.name, a.Player, a.Difficulty)
}

// Move returns the move the agent would make. Pass is returned if there are no legal moves.
//
// The first move on an empty board is always OpeningMove. This assumes a 7 column board.
func (a *Agent) Move(g game.State) (game.Single, error) {
	if len(g.LegalActions()) == 0 {
		return game.Pass, nil
	}
	if game.IsEmpty(g.Board()) {
		return OpeningMove, nil
	}
	return a.MCTS.Search(g)
}

func (a *Agent) record(winner game.Player) {
	a.Lock()
	switch winner {
	case game.Player(game.None):
		a.Draw++
	case a.Player:
		a.Wins++
	default:
		a.Loss++
	}
	a.Unlock()
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}
