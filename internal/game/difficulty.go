package game

import "strings"

// Difficulty selects the board size.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Layout is the pair count and grid width for a difficulty.
type Layout struct {
	Pairs   int `json:"pairs"`
	Columns int `json:"columns"`
}

var layouts = map[Difficulty]Layout{
	Easy:   {Pairs: 3, Columns: 3},
	Medium: {Pairs: 6, Columns: 4},
	Hard:   {Pairs: 9, Columns: 6},
}

// Difficulties lists the selectable difficulties in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty reads a difficulty name. Unknown names report false.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	_, ok := layouts[d]
	return d, ok
}

// Normalize maps unknown names to Hard, the board an unrecognized selection
// has always produced.
func Normalize(s string) Difficulty {
	if d, ok := ParseDifficulty(s); ok {
		return d
	}
	return Hard
}

// Layout returns the board layout for d. Unknown difficulties get Hard's.
func (d Difficulty) Layout() Layout {
	if l, ok := layouts[d]; ok {
		return l
	}
	return layouts[Hard]
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	_, ok := layouts[d]
	return ok
}

func (d Difficulty) String() string {
	return string(d)
}
