package net

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/memmatch/internal/game"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want ClientMessage
	}{
		{"flip 3", ClientMessage{Type: MsgFlip, Index: 3}},
		{"  7 ", ClientMessage{Type: MsgFlip, Index: 7}},
		{"new", ClientMessage{Type: MsgStart}},
		{"difficulty Easy", ClientMessage{Type: MsgDifficulty, Difficulty: "easy"}},
		{"save", ClientMessage{Type: MsgSave}},
		{"scores", ClientMessage{Type: MsgShowScores}},
		{"enable", ClientMessage{Type: MsgEnableSound}},
		{"sound waves", ClientMessage{Type: MsgSound, Track: "waves"}},
		{"", ClientMessage{}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, quit, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.False(t, quit)
			assert.Equal(t, tt.want, got)
		})
	}

	_, quit, _ := ParseCommand("quit")
	assert.True(t, quit)

	for _, bad := range []string{"flip", "flip x", "flip -1", "dance", "sound"} {
		_, _, err := ParseCommand(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatBoard(t *testing.T) {
	b := game.NewBoard([]int{1, 2, 1, 2})
	b.Flip(1)
	b.Flip(0)
	b.Flip(2)
	b.MarkMatched(0, 2)
	out := FormatBoard(game.Layout{Pairs: 2, Columns: 2}, b.Views())

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[ 0: 1]")
	assert.Contains(t, lines[0], "[ 1: 2]")
	assert.Contains(t, lines[1], "[ 2: 1]")
	assert.Contains(t, lines[1], "[ 3: ?]")
}
