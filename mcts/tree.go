package mcts

import (
	"math"

	"github.com/gorgonia/c4uct/game"
)

// Tree is a search tree. The nodes live in one arena, and nodes refer to each other by index.
//
// A tree is built by a single search and is never reused by another one.
type Tree struct {
	nodes    []Node
	children [][]naughty
	root     naughty
}

func newTree(state game.State) *Tree {
	t := &Tree{
		nodes:    make([]Node, 0, 1024),
		children: make([][]naughty, 0, 1024),
	}
	t.root = t.New(nilNode, Pass, state)
	return t
}

// New creates a new node. When a state is given, the node's untried moves are the state's legal moves
// and the player who just moved is the opponent of the player to move.
func (t *Tree) New(parent naughty, move game.Single, state game.State) naughty {
	n := t.alloc()
	N := t.nodeFromNaughty(n)
	N.parent = parent
	N.move = move
	if state != nil {
		legal := state.LegalActions()
		N.untried = make([]game.Single, len(legal))
		copy(N.untried, legal)
		N.justMoved = state.ToMove().Opponent()
	}
	return n
}

// alloc puts a new node into the arena. Pointers to nodes obtained before an alloc must not be used after it.
func (t *Tree) alloc() naughty {
	n := naughty(len(t.nodes))
	t.nodes = append(t.nodes, Node{id: n, parent: nilNode})
	t.children = append(t.children, nil)
	return n
}

// nodeFromNaughty gets the node given the pointer.
func (t *Tree) nodeFromNaughty(ptr naughty) *Node { return &t.nodes[int(ptr)] }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.nodeFromNaughty(t.root) }

// Children returns the children of n in the order they were expanded.
func (t *Tree) Children(n *Node) []*Node {
	kids := t.children[n.id]
	retVal := make([]*Node, 0, len(kids))
	for _, kid := range kids {
		retVal = append(retVal, t.nodeFromNaughty(kid))
	}
	return retVal
}

// Parent returns the parent of n, or nil for the root.
func (t *Tree) Parent(n *Node) *Node {
	if n.IsRoot() {
		return nil
	}
	return t.nodeFromNaughty(n.parent)
}

// selectChild returns the child with the highest UCB1 score. The first child wins a tie.
func (t *Tree) selectChild(of naughty) naughty {
	n := t.nodeFromNaughty(of)
	lnN := math.Log(float64(n.visits))

	best := nilNode
	bestValue := math.Inf(-1)
	for _, kid := range t.children[of] {
		v := t.nodeFromNaughty(kid).ucb1(lnN)
		if v > bestValue {
			bestValue = v
			best = kid
		}
	}
	return best
}

// addChild expands the move of the given node into a new child holding the resulting state.
func (t *Tree) addChild(of naughty, move game.Single, state game.State) naughty {
	kid := t.New(of, move, state)
	t.nodeFromNaughty(of).removeUntried(move)
	t.children[of] = append(t.children[of], kid)
	return kid
}

// backpropagate updates every node from the given one up to the root, inclusive.
func (t *Tree) backpropagate(from naughty, result game.Result) {
	result = result.Normalize()
	for id := from; id.isValid(); {
		n := t.nodeFromNaughty(id)
		n.update(n.perspective(result))
		id = n.parent
	}
}

// BestMove returns the move of the most visited child of the root. The first child wins a tie.
// If the root has no children, Pass is returned.
func (t *Tree) BestMove() game.Single {
	best := nilNode
	mostVisits := -1
	for _, kid := range t.children[t.root] {
		if v := t.nodeFromNaughty(kid).visits; v > mostVisits {
			mostVisits = v
			best = kid
		}
	}
	if best == nilNode {
		return Pass
	}
	return t.nodeFromNaughty(best).move
}
