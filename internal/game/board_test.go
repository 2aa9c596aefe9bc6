package game

import "testing"

func TestNewBoardAllHidden(t *testing.T) {
	b := NewBoard([]int{1, 2, 1, 2})
	if b.Len() != 4 {
		t.Fatalf("expected 4 cards, got %d", b.Len())
	}
	for i := 0; i < b.Len(); i++ {
		c, _ := b.Card(i)
		if c.Index != i {
			t.Errorf("card %d has index %d", i, c.Index)
		}
		if c.Status != CardHidden {
			t.Errorf("card %d starts %v", i, c.Status)
		}
	}
}

func TestFlipGuards(t *testing.T) {
	b := NewBoard([]int{1, 1})
	if !b.Flip(0) {
		t.Fatal("expected first flip to succeed")
	}
	if b.Flip(0) {
		t.Error("flipping a flipped card should be rejected")
	}
	if b.Flip(-1) || b.Flip(2) {
		t.Error("out of range flips should be rejected")
	}

	b.Flip(1)
	if !b.MarkMatched(0, 1) {
		t.Fatal("expected match")
	}
	if b.Flip(0) {
		t.Error("flipping a matched card should be rejected")
	}
	if b.Revert(0) {
		t.Error("matched cards never revert")
	}
}

func TestRevertOnlyFlipped(t *testing.T) {
	b := NewBoard([]int{1, 2, 1, 2})
	if b.Revert(0) {
		t.Error("cannot revert a hidden card")
	}
	b.Flip(0)
	if !b.Revert(0) {
		t.Error("expected revert of flipped card")
	}
	if b.IsFlipped(0) {
		t.Error("card should be hidden after revert")
	}
}

func TestMarkMatchedRequiresEqualFlipped(t *testing.T) {
	b := NewBoard([]int{1, 2, 1, 2})
	b.Flip(0)
	b.Flip(1)
	if b.MarkMatched(0, 1) {
		t.Error("different values must not match")
	}
	if b.MarkMatched(0, 0) {
		t.Error("a card cannot match itself")
	}
	if b.MarkMatched(0, 2) {
		t.Error("a hidden card cannot match")
	}
}

func TestViewsHideValues(t *testing.T) {
	b := NewBoard([]int{3, 1, 3, 1})
	b.Flip(1)

	views := b.Views()
	for i, v := range views {
		if i == 1 {
			if v.Status != "flipped" || v.Value != 1 {
				t.Errorf("flipped card view = %+v", v)
			}
			continue
		}
		if v.Status != "hidden" {
			t.Errorf("card %d status %q", i, v.Status)
		}
		if v.Value != 0 {
			t.Errorf("hidden card %d leaks value %d", i, v.Value)
		}
	}
}
