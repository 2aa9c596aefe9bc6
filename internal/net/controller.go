package net

import (
	"fmt"
	"sync"

	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/score"
)

// Encoder writes one message. *json.Encoder satisfies it.
type Encoder interface {
	Encode(v any) error
}

// Decoder reads one message. *json.Decoder satisfies it.
type Decoder interface {
	Decode(v any) error
}

// StreamRenderer implements session.Renderer by encoding every render call
// as a ServerMessage. The first send error is kept and later sends are
// dropped.
type StreamRenderer struct {
	enc Encoder
	mu  sync.Mutex
	err error
}

// NewStreamRenderer creates a renderer writing to enc.
func NewStreamRenderer(enc Encoder) *StreamRenderer {
	return &StreamRenderer{enc: enc}
}

// Err returns the first send error, if any.
func (sr *StreamRenderer) Err() error {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return sr.err
}

func (sr *StreamRenderer) send(msg ServerMessage) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	if sr.err != nil {
		return
	}
	if err := sr.enc.Encode(msg); err != nil {
		sr.err = fmt.Errorf("send %s: %w", msg.Type, err)
	}
}

func (sr *StreamRenderer) RenderBoard(layout game.Layout, cards []game.CardView) {
	sr.send(ServerMessage{Type: MsgBoard, Layout: &layout, Cards: cards})
}

func (sr *StreamRenderer) SetStats(moves, matches int) {
	sr.send(ServerMessage{Type: MsgStats, Moves: moves, Matches: matches})
}

func (sr *StreamRenderer) SetTimer(display string) {
	sr.send(ServerMessage{Type: MsgTimer, Timer: display})
}

func (sr *StreamRenderer) ShowResult(text string, stressIndex int) {
	sr.send(ServerMessage{
		Type:        MsgResult,
		Text:        text,
		StressIndex: stressIndex,
		Stress:      fmt.Sprintf("%d / 100", stressIndex),
	})
}

func (sr *StreamRenderer) HideResult() {
	sr.send(ServerMessage{Type: MsgHideResult})
}

func (sr *StreamRenderer) ShowBestScores(difficulty game.Difficulty, records []score.Record) {
	sr.send(ServerMessage{Type: MsgScores, Difficulty: difficulty.String(), Scores: ScoreViews(records)})
}

func (sr *StreamRenderer) PlayEffect(effect audio.Effect, src string, volume float64) {
	sr.send(ServerMessage{Type: MsgEffect, Effect: string(effect), Src: src, Volume: volume})
}

func (sr *StreamRenderer) PlayAmbient(track audio.Track, src string, volume float64) {
	sr.send(ServerMessage{Type: MsgAmbientPlay, Track: string(track), Src: src, Volume: volume})
}

func (sr *StreamRenderer) StopAmbient() {
	sr.send(ServerMessage{Type: MsgAmbientStop})
}

func (sr *StreamRenderer) SetSoundSelection(track audio.Track) {
	sr.send(ServerMessage{Type: MsgSoundSelection, Track: string(track)})
}

func (sr *StreamRenderer) SetSoundEnabled(on bool) {
	sr.send(ServerMessage{Type: MsgSoundEnabled, Enabled: on})
}

func (sr *StreamRenderer) Alert(message string) {
	sr.send(ServerMessage{Type: MsgAlert, Message: message})
}
