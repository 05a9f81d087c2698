// c4arena pits two MCTS agents against each other at Connect-Four.
//
// Games are streamed over a websocket at /ws and as MJPEG at /mjpeg, the running score is served at /stats,
// and optionally the games are recorded as a GIF and the statistics dumped as CSV.
//
// Usage:
//
//	c4arena [config.yaml]
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorgonia/c4uct"
	"github.com/gorgonia/c4uct/encoding/gif"
	"github.com/gorgonia/c4uct/encoding/mjpeg"
	"github.com/gorgonia/c4uct/game"
	"github.com/gorgonia/c4uct/game/c4"
	"github.com/gorgonia/c4uct/internal/bootstrap"
	"github.com/gorgonia/c4uct/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// multiEncoder fans every state out to all of its encoders.
type multiEncoder []c4uct.OutputEncoder

func (m multiEncoder) Encode(ms game.MetaState) error {
	for _, enc := range m {
		if err := enc.Encode(ms); err != nil {
			return err
		}
	}
	return nil
}

func (m multiEncoder) Flush() error {
	for _, enc := range m {
		if err := enc.Flush(); err != nil {
			return err
		}
	}
	return nil
}

type score struct {
	Name       string  `json:"name"`
	Difficulty string  `json:"difficulty"`
	Wins       float32 `json:"wins"`
	Losses     float32 `json:"losses"`
	Draws      float32 `json:"draws"`
}

func scoreOf(a *c4uct.Agent) score {
	a.Lock()
	defer a.Unlock()
	return score{
		Name:       a.Name(),
		Difficulty: string(a.Difficulty),
		Wins:       a.Wins,
		Losses:     a.Loss,
		Draws:      a.Draw,
	}
}

func router(s *Streamer, mj *mjpeg.Encoder, agents ...*c4uct.Agent) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", s.ServeHTTP)
	r.Get("/mjpeg", mj.ServeHTTP)
	r.Get("/stats", func(w http.ResponseWriter, req *http.Request) {
		scores := make([]score, 0, len(agents))
		for _, a := range agents {
			scores = append(scores, scoreOf(a))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(scores)
	})
	return r
}

func main() {
	var cfgPath string
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("arena failed")
	}
}

func run(cfg *bootstrap.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := append(cfg.Options(), mcts.WithLogger(logger))
	a := c4uct.NewAgent("A", cfg.Level(), opts...)
	b := c4uct.NewAgent("B", c4uct.Easy, opts...)
	arena := c4uct.NewArena("Connect Four", func() game.State { return c4.Connect4() }, a, b, logger)

	streamer := NewStreamer(logger)
	mj := mjpeg.NewEncoder(800, 800)
	defer mj.Close()
	enc := multiEncoder{streamer, mj}
	if cfg.GifPath != "" {
		f, err := os.Create(cfg.GifPath)
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()
		enc = append(enc, gif.NewGifEncoder(f, 800, 800))
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: router(streamer, mj, a, b)}
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("serving")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server")
		}
	}()

	start := time.Now()
	if err := arena.Run(cfg.Games, enc); err != nil {
		return err
	}
	logger.Info().
		Int("games", cfg.Games).
		Dur("took", time.Since(start)).
		Interface("A", scoreOf(a)).
		Interface("B", scoreOf(b)).
		Msg("done")

	if cfg.StatsPath != "" {
		if err := arena.Dump(cfg.StatsPath); err != nil {
			return err
		}
	}

	// keep serving the final score until interrupted
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
