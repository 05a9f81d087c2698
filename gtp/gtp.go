package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gorgonia/c4uct"
	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
)

// Engine is a text protocol engine in the style of GTP, speaking columns instead of vertices.
type Engine struct {
	g     game.State
	agent *c4uct.Agent

	known map[string]Command

	ch   chan string
	ret  chan string
	done chan struct{}

	// New creates a fresh game of the given size. It is used by "boardsize".
	New func(rows, cols int) game.State
	// Level creates the agent that plays at the given difficulty. It is used by "level".
	Level func(d c4uct.Difficulty) *c4uct.Agent

	name, version string
}

// New creates an engine playing g with agent. If known is nil, StandardLib is used.
func New(g game.State, agent *c4uct.Agent, name, version string, known map[string]Command) *Engine {
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		g:       g,
		agent:   agent,
		known:   known,
		name:    name,
		version: version,
	}
}

// Start starts the command loop. Commands are sent on input and responses are read from output.
// The loop ends when input is closed or "quit" is received.
func (e *Engine) Start() (input chan<- string, output <-chan string) {
	e.ch = make(chan string)
	e.ret = make(chan string)
	e.done = make(chan struct{})
	go e.start()
	return e.ch, e.ret
}

// Done is closed when the command loop has ended.
func (e *Engine) Done() <-chan struct{} { return e.done }

func (e *Engine) State() game.State   { return e.g }
func (e *Engine) Agent() *c4uct.Agent { return e.agent }

func (e *Engine) start() {
	defer close(e.done)
	defer close(e.ret)
	for cmd := range e.ch {
		id, x, args, err := e.parse(cmd)
		if x == nil && err == nil {
			continue
		}
		if err != nil {
			e.ret <- handleErr(id, err)
			continue
		}
		id, result, err := x.Do(id, args, e)
		e.ret <- handleResult(id, result, err)
		if _, ok := x.(quitter); ok {
			return
		}
	}
}

// parse follows the command structure of GTP version 2:
// an optional numeric id, a command name and its arguments.
func (e *Engine) parse(cmd string) (id int, x Command, args []string, err error) {
	cmd = preprocess(cmd)
	tokens := strings.Fields(cmd)
	id = -1
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}
	if id, err = strconv.Atoi(tokens[0]); err == nil {
		tokens = tokens[1:]
	} else {
		// ID is optional
		err = nil
		id = -1
	}

	if len(tokens) == 0 {
		return id, nil, nil, nil
	}

	var ok bool
	if x, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("Unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return
}

// HasCommand returns true if the engine will respond to line.
// Blank lines, comments and lone ids get no response.
func HasCommand(line string) bool {
	tokens := strings.Fields(preprocess(line))
	if len(tokens) > 0 {
		if _, err := strconv.Atoi(tokens[0]); err == nil {
			tokens = tokens[1:]
		}
	}
	return len(tokens) > 0
}

// preprocess lowercases the command and strips comments.
func preprocess(a string) string {
	if i := strings.IndexByte(a, '#'); i >= 0 {
		a = a[:i]
	}
	return strings.ToLower(strings.TrimSpace(a))
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}

	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}
