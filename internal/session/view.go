package session

import (
	"github.com/peterkuimelis/memmatch/internal/game"
)

// ResultView is the summary shown once a board is cleared.
type ResultView struct {
	Text           string `json:"text"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Moves          int    `json:"moves"`
	StressIndex    int    `json:"stress_index"`
	Stress         string `json:"stress"`
	Band           string `json:"band"`
}

// View is a point-in-time copy of what the player can see.
type View struct {
	SessionID    string          `json:"session_id,omitempty"`
	Difficulty   game.Difficulty `json:"difficulty"`
	Layout       game.Layout     `json:"layout"`
	State        string          `json:"state"`
	Cards        []game.CardView `json:"cards"`
	Moves        int             `json:"moves"`
	Matches      int             `json:"matches"`
	Timer        string          `json:"timer"`
	Result       *ResultView     `json:"result,omitempty"`
	Sound        string          `json:"sound"`
	SoundEnabled bool            `json:"sound_enabled"`
}

// Snapshot returns the current view. Before any game, only the selection
// and sound fields are set.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Difficulty:   c.difficulty,
		Layout:       c.difficulty.Layout(),
		State:        "none",
		Timer:        game.FormatClock(0),
		Sound:        string(c.mixer.Current()),
		SoundEnabled: c.mixer.Unlocked(),
	}
	gs := c.current
	if gs == nil {
		return v
	}

	stats := gs.engine.Stats()
	v.SessionID = gs.ID.String()
	v.Difficulty = gs.Difficulty
	v.Layout = gs.Layout
	v.State = gs.engine.State().String()
	v.Cards = gs.engine.Board().Views()
	v.Moves = stats.Moves
	v.Matches = stats.Matches
	v.Timer = gs.clock
	if r := gs.result; r != nil {
		v.Result = &ResultView{
			Text:           r.Text(),
			ElapsedSeconds: r.ElapsedSeconds,
			Moves:          r.Moves,
			StressIndex:    r.StressIndex,
			Stress:         r.StressDisplay(),
			Band:           r.Band.String(),
		}
	}
	return v
}
