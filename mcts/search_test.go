package mcts

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/c4uct/game"
	"github.com/gorgonia/c4uct/game/c4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var treeCmp = cmp.AllowUnexported(Tree{}, Node{})

// winInOne returns a game of Connect-Four where Black, to move, wins by playing column 2.
func winInOne(t *testing.T) *c4.Game {
	g := c4.Connect4()
	for _, m := range []game.Single{2, 0, 2, 6, 2, 4} {
		require.NoError(t, g.Apply(m))
	}
	require.Equal(t, game.Player(game.Black), g.ToMove())
	return g
}

// walk visits every node of the tree along with the state it represents.
func walk(t *testing.T, tree *Tree, root game.State, fn func(n *Node, state game.State)) {
	var rec func(n *Node, state game.State)
	rec = func(n *Node, state game.State) {
		fn(n, state)
		for _, kid := range tree.Children(n) {
			next := state.Clone()
			require.NoError(t, next.Apply(kid.Move()))
			rec(kid, next)
		}
	}
	rec(tree.Root(), root.Clone())
}

func TestSearchNoMoves(t *testing.T) {
	state := &mockState{player: game.Player(game.Black), length: 0}
	m := New(Config{Iterations: 50})

	best, err := m.Search(state)
	require.NoError(t, err)
	assert.Equal(t, Pass, best)

	tree, err := m.SearchTree(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 50, tree.Root().Visits())
}

func TestSearchZeroIterations(t *testing.T) {
	m := New(Config{Iterations: 0})
	best, err := m.Search(c4.Connect4())
	require.NoError(t, err)
	assert.Equal(t, Pass, best)
}

func TestSearchTreeInvariants(t *testing.T) {
	const N = 300
	g := c4.Connect4()
	m := New(Config{Iterations: N}, WithSeed(1337))
	tree, err := m.SearchTree(context.Background(), g)
	require.NoError(t, err)

	root := tree.Root()
	assert.Equal(t, N, root.Visits(), "every iteration passes through the root once")
	var sum int
	for _, kid := range tree.Children(root) {
		sum += kid.Visits()
	}
	assert.LessOrEqual(t, sum, N)

	walk(t, tree, g, func(n *Node, state game.State) {
		assert.LessOrEqual(t, -n.Visits(), n.Wins(), "node %v", n)
		assert.LessOrEqual(t, n.Wins(), n.Visits(), "node %v", n)
		if !n.IsRoot() {
			assert.GreaterOrEqual(t, n.Visits(), 1, "expanded nodes have been backpropagated through")
		}

		var moves []game.Single
		for _, kid := range tree.Children(n) {
			moves = append(moves, kid.Move())
		}
		if len(moves) > 0 {
			for _, m := range n.Untried() {
				assert.NotContains(t, moves, m, "a move is either untried or expanded")
			}
		}
		assert.ElementsMatch(t, state.LegalActions(), append(moves, n.Untried()...))
		assert.Equal(t, state.ToMove().Opponent(), n.JustMoved())
	})
}

func TestSearchTerminalRoot(t *testing.T) {
	g := winInOne(t)
	require.NoError(t, g.Apply(2))
	require.True(t, g.Ended())

	m := New(Config{Iterations: 20})
	tree, err := m.SearchTree(context.Background(), g)
	require.NoError(t, err)
	assert.Empty(t, tree.Children(tree.Root()))
	assert.Equal(t, 20, tree.Root().Visits())
	assert.Equal(t, 20, tree.Root().Wins(), "the root's player is Black, who has already won")
	assert.Equal(t, Pass, tree.BestMove())

	// a state that still reports moves once it has ended is never expanded
	state := &mockState{player: game.Player(game.Black), moves: []game.Single{0, 1}, length: 0, legalWhenEnded: true}
	tree, err = m.SearchTree(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Len())
	assert.Len(t, tree.Root().Untried(), 2)
}

func TestSearchDeterministic(t *testing.T) {
	seq := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	a := New(Config{Iterations: 200}, WithChooser(&scriptedChooser{seq: seq}))
	b := New(Config{Iterations: 200}, WithChooser(&scriptedChooser{seq: seq}))

	ta, err := a.SearchTree(context.Background(), c4.Connect4())
	require.NoError(t, err)
	tb, err := b.SearchTree(context.Background(), c4.Connect4())
	require.NoError(t, err)

	if diff := cmp.Diff(ta, tb, treeCmp); diff != "" {
		t.Errorf("Expected identical trees. Diff:\n%s", diff)
	}
	assert.Equal(t, ta.BestMove(), tb.BestMove())
}

func TestSearchExpansionUsesChooser(t *testing.T) {
	state := &mockState{player: game.Player(game.Black), moves: []game.Single{0, 1, 2}, length: 1, result: game.Result(game.Black)}
	m := New(Config{Iterations: 1}, WithChooser(&scriptedChooser{seq: []int{2}}))
	tree, err := m.SearchTree(context.Background(), state)
	require.NoError(t, err)

	kids := tree.Children(tree.Root())
	require.Len(t, kids, 1)
	assert.Equal(t, game.Single(2), kids[0].Move())
	assert.Equal(t, 1, kids[0].Wins(), "Black moved into a win")
	assert.Equal(t, -1, tree.Root().Wins())
}

func TestExplorationIsNotConsulted(t *testing.T) {
	build := func(exploration float64) *Tree {
		conf := Config{Iterations: 200, Exploration: exploration}
		tree, err := New(conf, WithSeed(42)).SearchTree(context.Background(), c4.Connect4())
		require.NoError(t, err)
		return tree
	}
	if diff := cmp.Diff(build(0), build(100), treeCmp); diff != "" {
		t.Errorf("The configured exploration factor should not change the search. Diff:\n%s", diff)
	}
}

func TestDrawSentinelEquivalence(t *testing.T) {
	build := func(result game.Result) *Tree {
		state := &mockState{player: game.Player(game.Black), moves: []game.Single{0, 1, 2}, length: 3, result: result}
		m := New(Config{Iterations: 40}, WithChooser(&scriptedChooser{seq: []int{1, 2, 0, 2}}))
		tree, err := m.SearchTree(context.Background(), state)
		require.NoError(t, err)
		return tree
	}
	if diff := cmp.Diff(build(game.Draw), build(0), treeCmp); diff != "" {
		t.Errorf("Draw and 0 should produce the same statistics. Diff:\n%s", diff)
	}
}

func TestSearchPropagatesErrors(t *testing.T) {
	errBoom := errors.New("boom")
	state := &mockState{player: game.Player(game.Black), moves: []game.Single{0}, length: 2, err: errBoom}

	best, err := New(Config{Iterations: 10}).Search(state)
	require.Error(t, err)
	assert.Equal(t, errBoom, errors.Cause(err))
	assert.Equal(t, Pass, best)
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tree, err := New(Config{Iterations: 100}).SearchTree(ctx, c4.Connect4())
	require.NoError(t, err)
	assert.Zero(t, tree.Root().Visits())
	assert.Equal(t, Pass, tree.BestMove())
}

func TestSearchWinInOne(t *testing.T) {
	const trials = 10
	var found int
	for seed := uint64(1); seed <= trials; seed++ {
		m := New(Config{Iterations: 1000}, WithSeed(seed))
		best, err := m.Search(winInOne(t))
		require.NoError(t, err)
		if best == 2 {
			found++
		}
	}
	assert.GreaterOrEqual(t, found, trials-1, "column 2 wins immediately")
}
