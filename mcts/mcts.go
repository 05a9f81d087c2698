package mcts

import (
	"math"
	"time"

	"github.com/gorgonia/c4uct/game"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

const (
	// Pass is returned by a search that has no move to suggest.
	Pass = game.Pass

	// explorationConstant is the C in the UCB1 formula. Selection always uses it;
	// Config.Exploration is not consulted.
	explorationConstant = math.Sqrt2

	defaultIterations = 1000
)

// Chooser picks an index uniformly at random from [0, n).
// *rand.Rand from golang.org/x/exp/rand and math/rand both satisfy it.
type Chooser interface {
	Intn(n int) int
}

// Config is the structure to configure the search
type Config struct {
	Iterations int // iteration budget

	// Exploration is the configured exploration factor. It is vestigial: the selection
	// formula uses a fixed sqrt(2) regardless of this value.
	Exploration float64

	// Timeout stops the search early once elapsed. 0 means the full budget is always searched.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Iterations:  defaultIterations,
		Exploration: math.Sqrt2,
	}
}

func (c Config) IsValid() bool {
	return c.Iterations >= 0 && c.Timeout >= 0
}

// Option configures an MCTS.
type Option func(m *MCTS)

// WithChooser sets the source of random choices used for expansion and rollouts.
func WithChooser(c Chooser) Option {
	return func(m *MCTS) {
		m.chooser = c
	}
}

// WithSeed makes the default chooser deterministic.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.chooser = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = l
	}
}

// WithIterations overrides the iteration budget of the config.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.Iterations = iterations
	}
}

// WithTimeout overrides the timeout of the config.
func WithTimeout(d time.Duration) Option {
	return func(m *MCTS) {
		m.Timeout = d
	}
}
