package game

import (
	"testing"
)

// pairPositions maps each value to the two board indices holding it.
func pairPositions(t *testing.T, b *Board) map[int][2]int {
	t.Helper()
	pos := make(map[int][]int)
	for i := 0; i < b.Len(); i++ {
		v := b.ValueAt(i)
		pos[v] = append(pos[v], i)
	}
	out := make(map[int][2]int, len(pos))
	for v, idx := range pos {
		if len(idx) != 2 {
			t.Fatalf("value %d appears %d times, want 2", v, len(idx))
		}
		out[v] = [2]int{idx[0], idx[1]}
	}
	return out
}

// mismatchPair returns two indices holding different values.
func mismatchPair(t *testing.T, b *Board) (int, int) {
	t.Helper()
	for i := 1; i < b.Len(); i++ {
		if b.ValueAt(i) != b.ValueAt(0) {
			return 0, i
		}
	}
	t.Fatal("board has no mismatching pair")
	return -1, -1
}

// newTestEngine builds an engine over a fixed, unshuffled deck.
func newTestEngine(values ...int) *Engine {
	pairs := len(values) / 2
	return NewEngine(values, NewStats(pairs))
}

// playPerfect clicks every pair in value order and returns the last result.
func playPerfect(t *testing.T, e *Engine) ClickResult {
	t.Helper()
	var last ClickResult
	pos := pairPositions(t, e.Board())
	for v := 1; v <= len(pos); v++ {
		p := pos[v]
		if r := e.Click(p[0]); r.Outcome != OutcomeFlipped {
			t.Fatalf("first click on value %d: got %v", v, r.Outcome)
		}
		last = e.Click(p[1])
		if !last.Outcome.IsMatch() {
			t.Fatalf("second click on value %d: got %v", v, last.Outcome)
		}
	}
	return last
}
