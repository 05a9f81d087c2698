package c4

import (
	"fmt"

	"github.com/gorgonia/c4uct/game"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// directions to scan for a line, as (dy, dx): rightwards, downwards and both diagonals.
var directions = [...][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

type Board struct {
	data *tensor.Dense
	it   [][]game.Colour
	n    int // how many to be considered a win?
}

func newBoard(rows, cols, n int) *Board {
	backing := make([]game.Colour, rows*cols)
	data := tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(backing))
	iter, err := native.Matrix(data)
	if err != nil {
		panic(err)
	}
	it := iter.([][]game.Colour)
	return &Board{
		data: data,
		it:   it,
		n:    n,
	}
}

func (b *Board) Format(s fmt.State, c rune) {
	switch c {
	case 's', 'v':
		for _, row := range b.it {
			fmt.Fprint(s, "⎢ ")
			for _, col := range row {
				fmt.Fprintf(s, "%s ", col)
			}
			fmt.Fprint(s, "⎥\n")
		}
	}
}

func (b *Board) shape() (rows, cols int) {
	sh := b.data.Shape()
	return sh[0], sh[1]
}

func (b *Board) cells() []game.Colour { return b.data.Data().([]game.Colour) }

// drop places a piece of the given colour in the lowest empty cell of the column.
func (b *Board) drop(col int, c game.Colour) error {
	row, err := b.check(col)
	if err != nil {
		return err
	}
	b.it[row][col] = c
	return nil
}

// check returns the row a piece dropped into col would land in.
func (b *Board) check(col int) (row int, err error) {
	_, cols := b.shape()
	if col < 0 || col >= cols {
		return -1, errors.Errorf("Column %d is out of bounds. The board has %d columns", col, cols)
	}
	for row = len(b.it) - 1; row >= 0; row-- {
		if b.it[row][col] == game.None {
			return row, nil
		}
	}
	return -1, errors.Errorf("Column %d is full", col)
}

func (b *Board) clone() *Board {
	rows, cols := b.shape()
	b2 := newBoard(rows, cols, b.n)
	copy(b2.cells(), b.cells())
	return b2
}

func (b *Board) isFull() bool {
	for _, c := range b.it[0] {
		if c == game.None {
			return false
		}
	}
	return true
}

// checkWin returns the colour that has n in a row, or None.
func (b *Board) checkWin() game.Colour {
	rows, cols := b.shape()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := b.it[y][x]
			if c == game.None {
				continue
			}
			for _, d := range directions {
				if b.run(y, x, d[0], d[1], rows, cols) >= b.n {
					return c
				}
			}
		}
	}
	return game.None
}

// run counts the consecutive cells of the same colour as (y, x), walking in direction (dy, dx).
func (b *Board) run(y, x, dy, dx, rows, cols int) int {
	c := b.it[y][x]
	var count int
	for ; y >= 0 && y < rows && x >= 0 && x < cols && b.it[y][x] == c; y, x = y+dy, x+dx {
		count++
		if count == b.n {
			break
		}
	}
	return count
}
