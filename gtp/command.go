package gtp

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gorgonia/c4uct"
	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

// quitter ends the command loop once its response has been sent.
type quitter stdlib

// resetter is a game that can be cleared in place.
type resetter interface {
	Reset()
}

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func (f quitter) Do(id int, args []string, e *Engine) (int, string, error) {
	return id, f(e), nil
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }
func quit(e *Engine) string            { return "" }
func showboard(e *Engine) string       { return "\n" + strings.TrimRight(fmt.Sprintf("%v", e.g), "\n") }

func listCommands(e *Engine) string {
	cmds := make([]string, 0, len(e.known))
	for c := range e.known {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)

	var buf bytes.Buffer
	for i, c := range cmds {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(c)
	}
	return buf.String()
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func clearBoard(e *Engine, args []string) (string, error) {
	r, ok := e.g.(resetter)
	if !ok {
		return "", errors.Errorf("Unable to clear a board of %T", e.g)
	}
	r.Reset()
	return "", nil
}

// boardSize accepts "boardsize <n>" for an n by n board and "boardsize <rows> <cols>".
// The board must be wide enough for the agent's opening move.
func boardSize(e *Engine, args []string) (string, error) {
	if e.New == nil {
		return "", errors.New("Unable to resize the board. No constructor found")
	}
	var rows, cols int
	var err error
	switch len(args) {
	case 0:
		return "", errors.New("Not enough arguments for \"boardsize\"")
	case 1:
		if rows, err = strconv.Atoi(args[0]); err != nil {
			return "", errors.WithMessage(err, "Unable to parse first argument of boardsize")
		}
		cols = rows
	default:
		if rows, err = strconv.Atoi(args[0]); err != nil {
			return "", errors.WithMessage(err, "Unable to parse first argument of boardsize")
		}
		if cols, err = strconv.Atoi(args[1]); err != nil {
			return "", errors.WithMessage(err, "Unable to parse second argument of boardsize")
		}
	}
	if rows < 1 {
		return "", errors.Errorf("Unacceptable size: %d rows", rows)
	}
	if cols <= int(c4uct.OpeningMove) {
		return "", errors.Errorf("Unacceptable size: %d columns. At least %d are required", cols, int(c4uct.OpeningMove)+1)
	}
	e.g = e.New(rows, cols)
	return "", nil
}

// parseColour parses "b", "black", "w" and "white".
func parseColour(s string) (game.Player, error) {
	switch s {
	case "b", "black":
		return game.Player(game.Black), nil
	case "w", "white":
		return game.Player(game.White), nil
	}
	return game.Player(game.None), errors.Errorf("Unknown colour %q", s)
}

// checkTurn returns an error if a colour is given and it is not the colour to move.
func checkTurn(e *Engine, args []string) error {
	if len(args) == 0 {
		return nil
	}
	p, err := parseColour(args[0])
	if err != nil {
		return err
	}
	if p != e.g.ToMove() {
		return errors.Errorf("It is %v's turn", e.g.ToMove())
	}
	return nil
}

// play accepts "play <col>" and "play <colour> <col>".
func play(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	if err := checkTurn(e, args[:len(args)-1]); err != nil {
		return "", err
	}
	col, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return "", errors.WithMessage(err, "Unable to parse column")
	}
	if e.g.Ended() {
		return "", errors.New("Game is over")
	}
	if err := e.g.Apply(game.Single(col)); err != nil {
		return "", errors.WithMessage(err, "Illegal move")
	}
	return "", nil
}

// genmove accepts "genmove" and "genmove <colour>". The agent plays the generated move.
func genmove(e *Engine, args []string) (string, error) {
	if e.agent == nil {
		return "", errors.New("Unable to generate moves. No agent found")
	}
	if err := checkTurn(e, args); err != nil {
		return "", err
	}
	e.agent.Player = e.g.ToMove()
	move, err := e.agent.Move(e.g)
	if err != nil {
		return "", errors.WithMessage(err, "Unable to generate move")
	}
	if move.IsPass() {
		return "pass", nil
	}
	if err := e.g.Apply(move); err != nil {
		return "", errors.WithMessage(err, "Generated an illegal move")
	}
	return strconv.Itoa(int(move)), nil
}

func level(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"level\"")
	}
	if e.Level == nil {
		return "", errors.New("Unable to change level. No agent constructor found")
	}
	d := c4uct.ParseDifficulty(args[0])
	e.agent = e.Level(d)
	return fmt.Sprintf("%s %d", d, d.Iterations()), nil
}

// result reports the winner of an ended game: "black", "white" or "draw".
func result(e *Engine, args []string) (string, error) {
	if !e.g.Ended() {
		return "", errors.New("Game is not over")
	}
	switch e.g.Result().Winner() {
	case game.Player(game.Black):
		return "black", nil
	case game.Player(game.White):
		return "white", nil
	}
	return "draw", nil
}

func undo(e *Engine, args []string) (string, error) {
	return "", errors.New("cannot undo")
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"showboard":        stdlib(showboard),
		"quit":             quitter(quit),

		"known_command": stdlib2(knownCommand),
		"boardsize":     stdlib2(boardSize),
		"clear_board":   stdlib2(clearBoard),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
		"level":         stdlib2(level),
		"final_result":  stdlib2(result),
		"undo":          stdlib2(undo),
	}
}
