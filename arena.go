package c4uct

import (
	"fmt"
	"time"

	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Arena pits two agents against each other.
type Arena struct {
	r       *rand.Rand
	newGame func() game.State
	game    game.State
	A, B    *Agent

	// state
	currentPlayer *Agent
	logger        zerolog.Logger
	Statistics

	name       string
	gameNumber int // which game is this in
}

// NewArena makes an arena given a way to set up a fresh game.
func NewArena(name string, newGame func() game.State, a, b *Agent, logger zerolog.Logger) *Arena {
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return &Arena{
		r:          rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		newGame:    newGame,
		game:       newGame(),
		A:          a,
		B:          b,
		logger:     logger.With().Str("arena", name).Logger(),
		Statistics: makeStatistics(),
		name:       name,
	}
}

// Play plays a game, and returns the winner. If it is a draw, the returned player is None.
//
// Which agent moves first is random. enc, if not nil, is called after every move.
func (a *Arena) Play(enc OutputEncoder) (winner game.Player, err error) {
	a.game = a.newGame()
	first, second := a.A, a.B
	if a.r.Intn(2) != 0 {
		first, second = a.B, a.A
	}
	first.Player = a.game.ToMove()
	second.Player = first.Player.Opponent()
	a.currentPlayer = first

	log := a.logger.With().Int("game", a.gameNumber).Logger()
	log.Info().Str("first", first.Name()).Str("second", second.Name()).Msg("playing")
	for !a.game.Ended() {
		var best game.Single
		if best, err = a.currentPlayer.Move(a.game); err != nil {
			return game.Player(game.None), errors.WithMessage(err, fmt.Sprintf("%v failed to move", a.currentPlayer))
		}
		if best.IsPass() {
			return game.Player(game.None), errors.Errorf("%v has no move but the game has not ended", a.currentPlayer)
		}
		if err = a.game.Apply(best); err != nil {
			return game.Player(game.None), errors.WithMessage(err, fmt.Sprintf("%v made an illegal move", a.currentPlayer))
		}
		log.Debug().Str("player", a.currentPlayer.Name()).Int32("move", int32(best)).Msg("moved")
		if enc != nil {
			if err = enc.Encode(a); err != nil {
				return game.Player(game.None), errors.WithMessage(err, "unable to encode game")
			}
		}
		a.switchPlayer()
	}

	winner = a.game.Result().Winner()
	a.A.record(winner)
	a.B.record(winner)
	a.update(a.A, a.B)
	log.Info().Str("winner", fmt.Sprintf("%v", winner)).Msg("game over")
	return winner, nil
}

// Run plays the given number of games. The agents' statistics are reset first.
func (a *Arena) Run(games int, enc OutputEncoder) error {
	a.A.resetStats()
	a.B.resetStats()
	for a.gameNumber = 0; a.gameNumber < games; a.gameNumber++ {
		if _, err := a.Play(enc); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("game %d", a.gameNumber))
		}
	}
	if enc != nil {
		return enc.Flush()
	}
	return nil
}

func (a *Arena) GameNumber() int       { return a.gameNumber }
func (a *Arena) Name() string          { return a.name }
func (a *Arena) State() game.State     { return a.game }
func (a *Arena) CurrentPlayer() *Agent { return a.currentPlayer }

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.A:
		a.currentPlayer = a.B
	case a.B:
		a.currentPlayer = a.A
	}
}
