package session

import (
	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/score"
)

// Renderer is the presentation side of a session. Calls arrive in state
// order and never concurrently for one controller.
type Renderer interface {
	RenderBoard(layout game.Layout, cards []game.CardView)
	SetStats(moves, matches int)
	SetTimer(display string)
	ShowResult(text string, stressIndex int)
	HideResult()
	ShowBestScores(difficulty game.Difficulty, records []score.Record)

	PlayEffect(effect audio.Effect, src string, volume float64)
	PlayAmbient(track audio.Track, src string, volume float64)
	StopAmbient()
	SetSoundSelection(track audio.Track)
	SetSoundEnabled(on bool)

	Alert(message string)
}

// NopRenderer ignores every call.
type NopRenderer struct{}

func (NopRenderer) RenderBoard(game.Layout, []game.CardView)             {}
func (NopRenderer) SetStats(int, int)                                    {}
func (NopRenderer) SetTimer(string)                                      {}
func (NopRenderer) ShowResult(string, int)                               {}
func (NopRenderer) HideResult()                                          {}
func (NopRenderer) ShowBestScores(game.Difficulty, []score.Record)       {}
func (NopRenderer) PlayEffect(audio.Effect, string, float64)             {}
func (NopRenderer) PlayAmbient(audio.Track, string, float64)             {}
func (NopRenderer) StopAmbient()                                         {}
func (NopRenderer) SetSoundSelection(audio.Track)                        {}
func (NopRenderer) SetSoundEnabled(bool)                                 {}
func (NopRenderer) Alert(string)                                         {}
