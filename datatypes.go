package c4uct

import (
	"github.com/gorgonia/c4uct/game"
)

// Searcher is anything that can suggest a move for a game state. *mcts.MCTS is a Searcher.
type Searcher interface {
	Search(state game.State) (game.Single, error)
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}
