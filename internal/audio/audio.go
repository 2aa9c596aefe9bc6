// Package audio tracks the ambient sound selection and the unlock gesture
// that must precede it. Playback itself happens in the front end.
package audio

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Track is an ambient soundscape.
type Track string

const (
	TrackNone   Track = "none"
	TrackRain   Track = "rain"
	TrackWaves  Track = "waves"
	TrackChimes Track = "chimes"
)

// Tracks lists the selectable tracks in menu order.
var Tracks = []Track{TrackNone, TrackRain, TrackWaves, TrackChimes}

// Effect is a one-shot sound cue.
type Effect string

const (
	EffectCorrect  Effect = "correct"
	EffectComplete Effect = "complete"
)

const (
	AmbientVolume = 0.5
	EffectVolume  = 0.7
)

// LockedMessage is shown when a track is picked before sound is enabled.
const LockedMessage = `Audio is locked. Click the "🔊 Enable Sound" button first.`

var (
	ErrLocked       = errors.New("audio is locked")
	ErrUnknownTrack = errors.New("unknown track")
)

// ParseTrack reads a track name.
func ParseTrack(s string) (Track, error) {
	t := Track(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Tracks, t) {
		return t, nil
	}
	return TrackNone, fmt.Errorf("%w: %q", ErrUnknownTrack, s)
}

// Selection is what the front end should do after a track change.
type Selection struct {
	Track  Track
	Src    string // empty when Stop is set
	Stop   bool
	Volume float64
}

// Mixer holds the unlock gate and current ambient track.
type Mixer struct {
	mu       sync.Mutex
	assets   string
	unlocked bool
	current  Track
	logger   *zap.Logger
}

// NewMixer serves sound files from the assets URL prefix.
func NewMixer(assets string, logger *zap.Logger) *Mixer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mixer{assets: assets, current: TrackNone, logger: logger}
}

// TrackSource is the URL of an ambient track's file.
func (m *Mixer) TrackSource(t Track) string {
	if t == TrackNone {
		return ""
	}
	return path.Join(m.assets, "sound_"+string(t)+".mp3")
}

// EffectSource is the URL of an effect's file.
func (m *Mixer) EffectSource(e Effect) string {
	return path.Join(m.assets, "sound_"+string(e)+".mp3")
}

// Unlock records the user gesture. It reports false if already unlocked.
func (m *Mixer) Unlock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unlocked {
		return false
	}
	m.unlocked = true
	return true
}

// Unlocked reports whether sound has been enabled.
func (m *Mixer) Unlocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unlocked
}

// Current returns the selected ambient track.
func (m *Mixer) Current() Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Select changes the ambient track. Choosing none always stops playback.
// Any other track before Unlock fails with ErrLocked and the selection
// falls back to none.
func (m *Mixer) Select(t Track) (Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t == TrackNone {
		m.current = TrackNone
		return Selection{Track: TrackNone, Stop: true}, nil
	}
	if _, err := ParseTrack(string(t)); err != nil {
		m.current = TrackNone
		return Selection{Track: TrackNone, Stop: true}, err
	}
	if !m.unlocked {
		m.current = TrackNone
		return Selection{Track: TrackNone, Stop: true}, ErrLocked
	}
	m.current = t
	return Selection{Track: t, Src: m.TrackSource(t), Volume: AmbientVolume}, nil
}

// ReportFailure records a playback failure from the front end. Failures
// never reach the player.
func (m *Mixer) ReportFailure(src, reason string) {
	m.logger.Warn("audio playback failed", zap.String("src", src), zap.String("reason", reason))
}
