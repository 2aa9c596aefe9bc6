package game

import (
	"fmt"
	"math"
	"time"
)

// Per-pair baselines for the stress index.
const (
	BaselineSecondsPerPair = 5
	BaselineMovesPerPair   = 2
)

// StressBand buckets a stress index for the result message.
type StressBand int

const (
	StressLow StressBand = iota
	StressModerate
	StressHigh
)

func (b StressBand) String() string {
	switch b {
	case StressLow:
		return "low"
	case StressModerate:
		return "moderate"
	case StressHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Message is the suggestion shown next to the result.
func (b StressBand) Message() string {
	switch b {
	case StressLow:
		return "Great — your stress score looks low. Keep it up!"
	case StressModerate:
		return "Nice — a short breathing exercise after this round will help."
	default:
		return "Try another round with slow breathing — you may feel calmer."
	}
}

// BandFor returns the band of a stress index: <=30 low, <=60 moderate, else high.
func BandFor(stress int) StressBand {
	switch {
	case stress <= 30:
		return StressLow
	case stress <= 60:
		return StressModerate
	default:
		return StressHigh
	}
}

// roundHalfUp rounds x to the nearest integer with halves going up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// StressIndex scores a finished game against the per-pair baselines.
// Lower is calmer. There is no upper bound.
func StressIndex(pairs, elapsedSeconds, moves int) int {
	if pairs < 1 {
		return 0
	}
	normalizedTime := float64(elapsedSeconds) / float64(pairs*BaselineSecondsPerPair)
	normalizedMoves := float64(moves) / float64(pairs*BaselineMovesPerPair)
	stress := roundHalfUp((normalizedTime + normalizedMoves) * 50)
	if stress < 0 {
		return 0
	}
	return stress
}

// FormatClock renders whole seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Result is the final accounting of a completed game.
type Result struct {
	Pairs          int
	ElapsedSeconds int
	Moves          int
	StressIndex    int
	Band           StressBand
	FinishedAt     time.Time
}

// Text is the summary line shown to the player.
func (r Result) Text() string {
	return fmt.Sprintf("You finished in %ds with %d moves. %s", r.ElapsedSeconds, r.Moves, r.Band.Message())
}

// StressDisplay is the stress index as shown next to the result.
func (r Result) StressDisplay() string {
	return fmt.Sprintf("%d / 100", r.StressIndex)
}

// Stats tracks moves, matches and time for one game.
type Stats struct {
	Pairs     int
	Moves     int
	Matches   int
	StartedAt time.Time

	result *Result
}

// NewStats returns stats for a board of the given pair count.
func NewStats(pairs int) *Stats {
	return &Stats{Pairs: pairs}
}

// Start zeroes the counters and stamps the start time.
func (s *Stats) Start(now time.Time) {
	s.Moves = 0
	s.Matches = 0
	s.StartedAt = now
	s.result = nil
}

// RecordMove counts one two-card comparison.
func (s *Stats) RecordMove() {
	s.Moves++
}

// RecordMatch counts one resolved pair.
func (s *Stats) RecordMatch() {
	if s.Matches < s.Pairs {
		s.Matches++
	}
}

// Elapsed returns whole elapsed seconds, truncated, for the timer display.
func (s *Stats) Elapsed(now time.Time) int {
	ms := now.Sub(s.StartedAt).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms / 1000)
}

// ClockDisplay is Elapsed formatted as mm:ss.
func (s *Stats) ClockDisplay(now time.Time) string {
	return FormatClock(s.Elapsed(now))
}

// Finalize computes the result once. Later calls return the first result.
func (s *Stats) Finalize(now time.Time) Result {
	if s.result != nil {
		return *s.result
	}
	ms := now.Sub(s.StartedAt).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	elapsed := roundHalfUp(float64(ms) / 1000)
	stress := StressIndex(s.Pairs, elapsed, s.Moves)
	s.result = &Result{
		Pairs:          s.Pairs,
		ElapsedSeconds: elapsed,
		Moves:          s.Moves,
		StressIndex:    stress,
		Band:           BandFor(stress),
		FinishedAt:     now,
	}
	return *s.result
}

// Finalized reports whether Finalize has run.
func (s *Stats) Finalized() bool {
	return s.result != nil
}
