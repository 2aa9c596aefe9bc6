package mcp

import (
	"sync"

	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/score"
)

// Cue is a presentation side effect an agent cannot see in the state, such
// as an alert or a sound cue.
type Cue struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Effect  string `json:"effect,omitempty"`
	Track   string `json:"track,omitempty"`
	Src     string `json:"src,omitempty"`
}

// cueRenderer implements session.Renderer for a tool caller. Board, stats
// and timer are read back from the controller snapshot, so only the
// transient calls are buffered.
type cueRenderer struct {
	mu     sync.Mutex
	cues   []Cue
	scores []score.Record
}

func (r *cueRenderer) add(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

// drain returns the buffered cues and clears them.
func (r *cueRenderer) drain() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	cues := r.cues
	r.cues = nil
	return cues
}

// lastScores returns the history most recently shown.
func (r *cueRenderer) lastScores() []score.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scores
}

func (r *cueRenderer) RenderBoard(game.Layout, []game.CardView) {}
func (r *cueRenderer) SetStats(int, int)                        {}
func (r *cueRenderer) SetTimer(string)                          {}
func (r *cueRenderer) HideResult()                              {}

func (r *cueRenderer) ShowResult(text string, stressIndex int) {
	r.add(Cue{Type: "result", Message: text})
}

func (r *cueRenderer) ShowBestScores(_ game.Difficulty, records []score.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = records
}

func (r *cueRenderer) PlayEffect(effect audio.Effect, src string, _ float64) {
	r.add(Cue{Type: "effect", Effect: string(effect), Src: src})
}

func (r *cueRenderer) PlayAmbient(track audio.Track, src string, _ float64) {
	r.add(Cue{Type: "ambient_play", Track: string(track), Src: src})
}

func (r *cueRenderer) StopAmbient() {
	r.add(Cue{Type: "ambient_stop"})
}

func (r *cueRenderer) SetSoundSelection(track audio.Track) {
	r.add(Cue{Type: "sound_selection", Track: string(track)})
}

func (r *cueRenderer) SetSoundEnabled(on bool) {
	r.add(Cue{Type: "sound_enabled"})
}

func (r *cueRenderer) Alert(message string) {
	r.add(Cue{Type: "alert", Message: message})
}
