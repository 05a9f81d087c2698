package c4uct_test

import (
	"fmt"
	"log"

	"github.com/gorgonia/c4uct"
	"github.com/gorgonia/c4uct/game/c4"
)

func ExampleAgent_Move() {
	a := c4uct.NewAgent("joshua", c4uct.Medium)
	move, err := a.Move(c4.Connect4())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(move)

	// Output:
	// 3
}
