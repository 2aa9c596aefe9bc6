package mcp

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/log"
	mmnet "github.com/peterkuimelis/memmatch/internal/net"
	"github.com/peterkuimelis/memmatch/internal/results"
	"github.com/peterkuimelis/memmatch/internal/score"
	"github.com/peterkuimelis/memmatch/internal/session"
)

// Options configures the process-wide session.
type Options struct {
	Session   session.Config
	Scores    *score.Store
	Publisher results.Publisher
	Clock     game.Clock
	Logger    *zap.Logger
}

// EventView is a game event as returned to the tool caller.
type EventView struct {
	Seq     int    `json:"seq"`
	Type    string `json:"type"`
	Move    int    `json:"move"`
	Card    int    `json:"card"`
	Details string `json:"details"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events  []EventView       `json:"events"`
	State   session.View      `json:"state"`
	Outcome string            `json:"outcome,omitempty"`
	Cues    []Cue             `json:"cues,omitempty"`
	Scores  []mmnet.ScoreView `json:"scores,omitempty"`
}

// GameSession is the MCP caller's player: one controller, its cue buffer
// and its event log.
type GameSession struct {
	ctrl     *session.Controller
	renderer *cueRenderer
	events   *log.MemoryLogger
	scores   *score.Store
}

// NewGameSession creates a session with no game dealt yet.
func NewGameSession(opts Options) *GameSession {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Scores == nil {
		opts.Scores = score.NewStore(score.NewMemoryKV(), opts.Logger)
	}
	s := &GameSession{
		renderer: &cueRenderer{},
		events:   log.NewMemoryLogger(),
		scores:   opts.Scores,
	}
	s.ctrl = session.New(opts.Session, session.Deps{
		Clock:     opts.Clock,
		Renderer:  s.renderer,
		Scores:    opts.Scores,
		Mixer:     audio.NewMixer("assets", opts.Logger),
		Events:    s.events,
		Logger:    opts.Logger,
		Publisher: opts.Publisher,
	})
	return s
}

// Close stops the session's timers.
func (s *GameSession) Close() {
	s.ctrl.Close()
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []EventView {
	events := s.events.Drain()
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, EventView{
			Seq:     e.Seq,
			Type:    e.Type.String(),
			Move:    e.Move,
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return views
}

// response collects everything that happened since the last tool call.
func (s *GameSession) response() *ToolResponse {
	return &ToolResponse{
		Events: s.drainEvents(),
		State:  s.ctrl.Snapshot(),
		Cues:   s.renderer.drain(),
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
