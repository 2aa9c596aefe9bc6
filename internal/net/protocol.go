package net

import (
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/score"
)

// Message types for the JSON protocol between a session and its front end.

// Server → client message types.
const (
	MsgBoard          = "board"
	MsgStats          = "stats"
	MsgTimer          = "timer"
	MsgResult         = "result"
	MsgHideResult     = "hide_result"
	MsgScores         = "scores"
	MsgEffect         = "effect"
	MsgAmbientPlay    = "ambient_play"
	MsgAmbientStop    = "ambient_stop"
	MsgSoundSelection = "sound_selection"
	MsgSoundEnabled   = "sound_enabled"
	MsgAlert          = "alert"
)

// Client → server message types.
const (
	MsgDifficulty  = "difficulty"
	MsgStart       = "start"
	MsgFlip        = "flip"
	MsgSave        = "save"
	MsgShowScores  = "scores"
	MsgEnableSound = "enable_sound"
	MsgSound       = "sound"
	MsgAudioError  = "audio_error"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "board"
	Layout *game.Layout    `json:"layout,omitempty"`
	Cards  []game.CardView `json:"cards,omitempty"`

	// For "stats"
	Moves   int `json:"moves,omitempty"`
	Matches int `json:"matches,omitempty"`

	// For "timer"
	Timer string `json:"timer,omitempty"`

	// For "result"
	Text        string `json:"text,omitempty"`
	StressIndex int    `json:"stress_index,omitempty"`
	Stress      string `json:"stress,omitempty"`

	// For "scores"
	Difficulty string      `json:"difficulty,omitempty"`
	Scores     []ScoreView `json:"scores,omitempty"`

	// For "effect", "ambient_play" and "sound_selection"
	Effect string  `json:"effect,omitempty"`
	Track  string  `json:"track,omitempty"`
	Src    string  `json:"src,omitempty"`
	Volume float64 `json:"volume,omitempty"`

	// For "sound_enabled"
	Enabled bool `json:"enabled,omitempty"`

	// For "alert"
	Message string `json:"message,omitempty"`
}

// ScoreView is one best-score line.
type ScoreView struct {
	Time  string `json:"time"`
	Moves int    `json:"moves"`
	Date  string `json:"date"`
	Text  string `json:"text"`
}

// ScoreViews converts stored records, keeping their order.
func ScoreViews(records []score.Record) []ScoreView {
	views := make([]ScoreView, 0, len(records))
	for _, r := range records {
		views = append(views, ScoreView{Time: r.Time, Moves: r.Moves, Date: r.Date, Text: r.String()})
	}
	return views
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "difficulty"
	Difficulty string `json:"difficulty,omitempty"`

	// For "flip"
	Index int `json:"index"`

	// For "sound"
	Track string `json:"track,omitempty"`

	// For "audio_error"
	Src    string `json:"src,omitempty"`
	Reason string `json:"reason,omitempty"`
}
