// c4gtp plays Connect-Four against an MCTS agent over a GTP style protocol on stdin and stdout.
//
// Usage:
//
//	c4gtp [config.yaml]
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gorgonia/c4uct"
	"github.com/gorgonia/c4uct/game"
	"github.com/gorgonia/c4uct/game/c4"
	"github.com/gorgonia/c4uct/gtp"
	"github.com/gorgonia/c4uct/internal/bootstrap"
	"github.com/gorgonia/c4uct/mcts"
	"github.com/rs/zerolog"
)

const version = "0.1.0"

func main() {
	var cfgPath string
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	newAgent := func(d c4uct.Difficulty) *c4uct.Agent {
		opts := append(cfg.Options(), mcts.WithLogger(logger))
		logger.Info().Str("difficulty", string(d)).Int("iterations", d.Iterations()).Msg("new agent")
		return c4uct.NewAgent("c4uct", d, opts...)
	}

	e := gtp.New(c4.Connect4(), newAgent(cfg.Level()), "c4uct", version, nil)
	e.New = func(rows, cols int) game.State { return c4.New(rows, cols, c4.ToWin) }
	e.Level = newAgent

	run(e, logger)
}

func run(e *gtp.Engine, logger zerolog.Logger) {
	in, out := e.Start()
	scanner := bufio.NewScanner(os.Stdin)
	w := bufio.NewWriter(os.Stdout)
	for scanner.Scan() {
		line := scanner.Text()
		select {
		case in <- line:
		case <-e.Done():
			return
		}
		if !gtp.HasCommand(line) {
			continue
		}
		resp, ok := <-out
		if !ok {
			return
		}
		w.WriteString(resp)
		w.Flush()
	}
	if err := scanner.Err(); err != nil {
		logger.Error().Err(err).Msg("reading stdin")
	}
	close(in)
}
