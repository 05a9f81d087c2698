package mcts

import (
	"fmt"
	"math"

	"github.com/gorgonia/c4uct/game"
)

// Node is a vertex of the search tree.
type Node struct {
	id     naughty
	parent naughty // nilNode for the root

	move      game.Single   // the move that led here from the parent. Pass for the root
	justMoved game.Player   // the player whose move produced this node's state
	untried   []game.Single // legal moves not yet expanded into children

	wins   int // sum of results from justMoved's perspective. -visits <= wins <= visits
	visits int
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Move: %v, JustMoved: %v, Wins: %v Visits: %v Untried: %v}", n.id, n.move, n.justMoved, n.wins, n.visits, n.untried)
}

// ID returns the position of the node in the tree. The root is 0.
func (n *Node) ID() int { return int(n.id) }

// Move gets the move associated with the node
func (n *Node) Move() game.Single { return n.move }

// JustMoved returns the player whose move produced this node.
// For the root this is the opponent of the player to move, as no move has actually been made.
func (n *Node) JustMoved() game.Player { return n.justMoved }

func (n *Node) Wins() int   { return n.wins }
func (n *Node) Visits() int { return n.visits }

// Untried returns a copy of the moves that have not been expanded.
func (n *Node) Untried() []game.Single {
	retVal := make([]game.Single, len(n.untried))
	copy(retVal, n.untried)
	return retVal
}

// IsRoot returns true if the node has no parent.
func (n *Node) IsRoot() bool { return !n.parent.isValid() }

// update records one backpropagation pass. result is one of -1, 0, 1.
func (n *Node) update(result int) {
	n.visits++
	n.wins += result
}

// perspective converts a normalized game result into a reward for the player who moved into this node.
func (n *Node) perspective(result game.Result) int {
	switch {
	case result == game.Result(n.justMoved):
		return 1
	case result == 0:
		return 0
	}
	return -1
}

// ucb1 is the upper confidence bound of the node given ln(N) of its parent.
// A node with no visits yields NaN or +Inf.
func (n *Node) ucb1(lnParentVisits float64) float64 {
	visits := float64(n.visits)
	return float64(n.wins)/visits + explorationConstant*math.Sqrt(lnParentVisits/visits)
}

func (n *Node) removeUntried(move game.Single) {
	kept := n.untried[:0]
	for _, m := range n.untried {
		if m != move {
			kept = append(kept, m)
		}
	}
	n.untried = kept
}
