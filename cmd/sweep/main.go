package main

import (
	"bufio"
	"flag"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"minefield/internal/board"
)

var (
	log = logrus.New()

	width  = flag.Int("width", 9, "board width")
	height = flag.Int("height", 9, "board height")
	seed   = flag.Uint64("seed", 0, "mine layout seed (0 picks one at random)")
)

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func execute(b *board.Board, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	switch parts[0] {
	case "o", "f":
		if len(parts) != 3 {
			return fmt.Errorf("usage: %s x y", parts[0])
		}
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		if parts[0] == "o" {
			b.Open(x, y)
		} else if _, ok := b.Flag(x, y); !ok {
			return fmt.Errorf("cannot flag %d:%d", x, y)
		}
		return nil
	case "d":
		fmt.Print(b)
		return nil
	case "q":
		os.Exit(0)
	}
	return fmt.Errorf("unknown command %q (try: o x y | f x y | d | q)", parts[0])
}

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = new(maphash.Hash).Sum64()
	}
	rnd := rand.New(rand.NewPCG(s, s>>1|1))

	b, err := board.New(*width, *height, rnd)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%dx%d, %d mines (seed %d)\n", b.Width(), b.Height(), b.Mines(), s)

	in := bufio.NewScanner(os.Stdin)
	for b.State() == board.Continue {
		fmt.Print(b.Player())
		fmt.Printf("mines left: %d\n> ", b.Mines()-b.Flagged())
		if !in.Scan() {
			return
		}
		if err := execute(b, in.Text()); err != nil {
			fmt.Println(err)
		}
	}

	fmt.Print(b.Player())
	switch b.State() {
	case board.Won:
		fmt.Println("you won!")
	case board.Lost:
		fmt.Println("you hit a mine")
	}
}
