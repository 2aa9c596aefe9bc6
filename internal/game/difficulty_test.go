package game

import "testing"

func TestDifficultyLayouts(t *testing.T) {
	tests := []struct {
		d       Difficulty
		pairs   int
		columns int
	}{
		{Easy, 3, 3},
		{Medium, 6, 4},
		{Hard, 9, 6},
	}
	for _, tt := range tests {
		l := tt.d.Layout()
		if l.Pairs != tt.pairs || l.Columns != tt.columns {
			t.Errorf("%s: got %+v", tt.d, l)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, ok := ParseDifficulty(" Medium "); !ok || d != Medium {
		t.Errorf("got %q, %v", d, ok)
	}
	if _, ok := ParseDifficulty("nightmare"); ok {
		t.Error("unknown difficulty accepted")
	}
	if Normalize("nightmare") != Hard {
		t.Error("unknown difficulty should fall back to hard")
	}
}
