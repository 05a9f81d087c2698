package mcts

import (
	"context"
	"fmt"
	"time"

	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

/*
Here lies the search loop, while node.go and tree.go handle the data structure stuff.

Each iteration works on its own clone of the state:
	SELECT, EXPAND, SIMULATE, BACKPROPAGATE.
*/

// MCTS searches for the best move of a game state with UCB1 Monte Carlo tree search.
//
// An MCTS is not safe for concurrent use: the chooser is shared between searches.
type MCTS struct {
	Config
	chooser Chooser
	logger  zerolog.Logger
}

// New creates a new MCTS.
func New(conf Config, opts ...Option) *MCTS {
	retVal := &MCTS{
		Config:  conf,
		chooser: rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(retVal)
	}
	return retVal
}

// Search returns the best move for the player to move in the given state.
// If there is no move to be made, Pass is returned.
//
// The state is only read; every iteration works on a clone of it.
func (m *MCTS) Search(state game.State) (game.Single, error) {
	t, err := m.SearchTree(context.Background(), state)
	if err != nil {
		return Pass, err
	}
	best := t.BestMove()
	m.logger.Debug().
		Int32("best", int32(best)).
		Int("rootVisits", t.Root().Visits()).
		Msg("search done")
	return best, nil
}

// SearchTree builds a search tree rooted at the given state and returns it.
//
// The search runs for the configured number of iterations. It stops early, between iterations,
// if ctx is done or the configured Timeout elapses.
func (m *MCTS) SearchTree(ctx context.Context, state game.State) (*Tree, error) {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	start := time.Now()
	t := newTree(state)
	var iter int
loop:
	for iter = 0; iter < m.Iterations; iter++ {
		select {
		case <-ctx.Done():
			m.logger.Info().Int("iterations", iter).Int("budget", m.Iterations).Msg("search stopped early")
			break loop
		default:
		}
		if err := m.simulate(t, state); err != nil {
			return nil, errors.WithMessage(err, fmt.Sprintf("search failed at iteration %d", iter))
		}
	}

	m.logger.Debug().
		Int("iterations", iter).
		Int("nodes", t.Len()).
		Dur("took", time.Since(start)).
		Msg("tree built")
	return t, nil
}

// simulate runs one iteration against a fresh clone of the root state.
func (m *MCTS) simulate(t *Tree, root game.State) error {
	state := root.Clone()
	leaf, err := m.selectAndExpand(t, state)
	if err != nil {
		return err
	}
	if err = m.rollout(state); err != nil {
		return err
	}
	t.backpropagate(leaf, state.Result())
	return nil
}

// selectAndExpand walks down the fully expanded part of the tree, then expands one untried move
// if the state reached hasn't ended. The state is advanced along the way.
func (m *MCTS) selectAndExpand(t *Tree, state game.State) (naughty, error) {
	current := t.root
	for len(t.nodeFromNaughty(current).untried) == 0 && len(t.children[current]) > 0 {
		current = t.selectChild(current)
		move := t.nodeFromNaughty(current).move
		if err := state.Apply(move); err != nil {
			return current, errors.WithMessage(err, fmt.Sprintf("unable to apply selected move %d", move))
		}
	}

	n := t.nodeFromNaughty(current)
	if len(n.untried) > 0 && !state.Ended() {
		move := n.untried[m.chooser.Intn(len(n.untried))]
		if err := state.Apply(move); err != nil {
			return current, errors.WithMessage(err, fmt.Sprintf("unable to apply expanded move %d", move))
		}
		current = t.addChild(current, move, state)
	}
	return current, nil
}

// rollout plays uniformly random moves until the game ends.
func (m *MCTS) rollout(state game.State) error {
	for !state.Ended() {
		moves := state.LegalActions()
		move := moves[m.chooser.Intn(len(moves))]
		if err := state.Apply(move); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("unable to apply rollout move %d", move))
		}
	}
	return nil
}
