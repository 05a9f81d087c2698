package c4uct

import (
	"testing"

	"github.com/gorgonia/c4uct/game"
	"github.com/gorgonia/c4uct/game/c4"
	"github.com/gorgonia/c4uct/mcts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSearcher records how many times it was asked for a move.
type mockSearcher struct {
	move  game.Single
	err   error
	calls int
}

func (m *mockSearcher) Search(state game.State) (game.Single, error) {
	m.calls++
	return m.move, m.err
}

func TestDifficultyIterations(t *testing.T) {
	cases := []struct {
		label      string
		iterations int
	}{
		{"easy", 500},
		{"medium", 1000},
		{"hard", 2000},
		{"HARD ", 2000},
		{"", 1000},
		{"impossible", 1000},
	}
	for _, c := range cases {
		assert.Equal(t, c.iterations, ParseDifficulty(c.label).Iterations(), "difficulty %q", c.label)
	}
}

func TestNewAgent(t *testing.T) {
	a := NewAgent("A", Hard)
	m, ok := a.MCTS.(*mcts.MCTS)
	require.True(t, ok)
	assert.Equal(t, 2000, m.Iterations)
	assert.Equal(t, "A", a.Name())
}

func TestAgentOpeningMove(t *testing.T) {
	s := &mockSearcher{move: 5}
	a := &Agent{MCTS: s}

	move, err := a.Move(c4.Connect4())
	require.NoError(t, err)
	assert.Equal(t, OpeningMove, move)
	assert.Zero(t, s.calls, "the opening move should not search")
}

func TestAgentNoMoves(t *testing.T) {
	g := c4.Connect4()
	for _, m := range []game.Single{0, 1, 0, 1, 0, 1, 0} {
		require.NoError(t, g.Apply(m))
	}
	require.True(t, g.Ended())

	s := &mockSearcher{move: 5}
	a := &Agent{MCTS: s}
	move, err := a.Move(g)
	require.NoError(t, err)
	assert.Equal(t, game.Pass, move)
	assert.Zero(t, s.calls)
}

func TestAgentSearches(t *testing.T) {
	g := c4.Connect4()
	require.NoError(t, g.Apply(3))

	s := &mockSearcher{move: 4}
	a := &Agent{MCTS: s}
	move, err := a.Move(g)
	require.NoError(t, err)
	assert.Equal(t, game.Single(4), move)
	assert.Equal(t, 1, s.calls)

	s.err = errors.New("boom")
	_, err = a.Move(g)
	assert.EqualError(t, err, "boom")
}
