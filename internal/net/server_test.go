package net

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/session"
)

func newTestController(r session.Renderer) (*session.Controller, *game.ManualClock) {
	clock := game.NewManualClock(time.Unix(0, 0))
	cfg := session.DefaultConfig()
	cfg.Seed = 1
	return session.New(cfg, session.Deps{Clock: clock, Renderer: r}), clock
}

func TestDispatch(t *testing.T) {
	var buf bytes.Buffer
	ctrl, _ := newTestController(NewStreamRenderer(json.NewEncoder(&buf)))

	require.NoError(t, Dispatch(ctrl, ClientMessage{Type: MsgDifficulty, Difficulty: "easy"}))
	require.NoError(t, Dispatch(ctrl, ClientMessage{Type: MsgStart}))
	require.NoError(t, Dispatch(ctrl, ClientMessage{Type: MsgFlip, Index: 0}))
	require.NoError(t, Dispatch(ctrl, ClientMessage{Type: MsgSound, Track: "rain"}))
	assert.ErrorIs(t, Dispatch(ctrl, ClientMessage{Type: "teleport"}), ErrUnknownMessage)

	var types []string
	for _, m := range decodeAll(t, &buf) {
		types = append(types, m.Type)
	}
	assert.Equal(t, []string{
		MsgScores,
		MsgHideResult, MsgBoard, MsgStats, MsgTimer,
		MsgBoard, MsgStats,
		MsgAlert, MsgSoundSelection,
	}, types)

	v := ctrl.Snapshot()
	assert.Equal(t, game.Easy, v.Difficulty)
	assert.Equal(t, "flipped", v.Cards[0].Status)
}

func TestServeStopsAtEndOfStream(t *testing.T) {
	ctrl, _ := newTestController(session.NopRenderer{})
	in := strings.NewReader(`{"type":"start"}` + "\n" + `{"type":"flip","index":2}` + "\n")

	require.NoError(t, Serve(context.Background(), json.NewDecoder(in), ctrl, nil))
	assert.Equal(t, "flipped", ctrl.Snapshot().Cards[2].Status)
}

func TestServeRejectsGarbage(t *testing.T) {
	ctrl, _ := newTestController(session.NopRenderer{})
	err := Serve(context.Background(), json.NewDecoder(strings.NewReader("{nope")), ctrl, nil)
	assert.Error(t, err)
}

// syncBuffer is a bytes.Buffer safe for the REPL's reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPlayLocalRoundTrip(t *testing.T) {
	stdinR, stdinW := io.Pipe()
	out := &syncBuffer{}

	cfg := session.DefaultConfig()
	cfg.Seed = 3
	deps := session.Deps{Clock: game.NewManualClock(time.Unix(0, 0))}

	done := make(chan error, 1)
	go func() { done <- PlayLocal(context.Background(), cfg, deps, stdinR, out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Moves: 0  Matches: 0/6")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "No scores yet")
	assert.Contains(t, out.String(), "[ 0: ?]")

	_, err := io.WriteString(stdinW, "flip 0\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "Moves: 0") == 2
	}, 2*time.Second, 10*time.Millisecond)
	final := out.String()
	i := strings.LastIndex(final, "[ 0:")
	require.GreaterOrEqual(t, i, 0)
	assert.NotEqual(t, "[ 0: ?]", final[i:i+len("[ 0: ?]")], "card 0 is face up on the last board")

	_, err = io.WriteString(stdinW, "quit\n")
	require.NoError(t, err)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("PlayLocal did not return after quit")
	}
	stdinW.Close()
}
