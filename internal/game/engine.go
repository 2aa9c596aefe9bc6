package game

// EngineState is the phase of the match engine.
type EngineState int

const (
	StateIdle EngineState = iota
	StateOneFlipped
	StateLocked
	StateComplete
)

func (s EngineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOneFlipped:
		return "one_flipped"
	case StateLocked:
		return "locked"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome is what a click did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeFlipped
	OutcomeMatch
	OutcomeMismatch
	OutcomeComplete // final match; also counts as a match
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeFlipped:
		return "flipped"
	case OutcomeMatch:
		return "match"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// IsMatch reports whether the click resolved a pair.
func (o Outcome) IsMatch() bool {
	return o == OutcomeMatch || o == OutcomeComplete
}

// ClickResult describes an accepted or rejected click. For comparisons First
// and Second are the two compared cards; otherwise Second is -1.
type ClickResult struct {
	Outcome Outcome
	First   int
	Second  int
}

// Engine is the flip/match state machine for one board.
type Engine struct {
	board *Board
	stats *Stats
	state EngineState

	first   int    // card flipped in OneFlipped
	pending [2]int // mismatched pair held in Locked
}

// NewEngine wraps a fresh board for values. The stats are counted into.
func NewEngine(values []int, stats *Stats) *Engine {
	return &Engine{
		board:   NewBoard(values),
		stats:   stats,
		state:   StateIdle,
		first:   -1,
		pending: [2]int{-1, -1},
	}
}

// Board returns the engine's board.
func (e *Engine) Board() *Board {
	return e.board
}

// Stats returns the counters the engine updates.
func (e *Engine) Stats() *Stats {
	return e.stats
}

// State returns the current engine state.
func (e *Engine) State() EngineState {
	return e.state
}

// Pending returns the mismatched pair awaiting revert, if locked.
func (e *Engine) Pending() (int, int, bool) {
	if e.state != StateLocked {
		return -1, -1, false
	}
	return e.pending[0], e.pending[1], true
}

// Click handles a card click. Invalid, stale and duplicate clicks are
// ignored without changing anything.
func (e *Engine) Click(i int) ClickResult {
	ignored := ClickResult{Outcome: OutcomeIgnored, First: i, Second: -1}

	switch e.state {
	case StateLocked, StateComplete:
		return ignored
	}
	if c, ok := e.board.Card(i); !ok || c.Status != CardHidden {
		return ignored
	}

	if e.state == StateIdle {
		e.board.Flip(i)
		e.first = i
		e.state = StateOneFlipped
		return ClickResult{Outcome: OutcomeFlipped, First: i, Second: -1}
	}

	// OneFlipped: i is hidden so it cannot be the first card.
	first := e.first
	e.board.Flip(i)
	e.stats.RecordMove()
	e.first = -1

	if e.board.ValueAt(first) == e.board.ValueAt(i) {
		e.board.MarkMatched(first, i)
		e.stats.RecordMatch()
		if e.stats.Matches == e.stats.Pairs {
			e.state = StateComplete
			return ClickResult{Outcome: OutcomeComplete, First: first, Second: i}
		}
		e.state = StateIdle
		return ClickResult{Outcome: OutcomeMatch, First: first, Second: i}
	}

	e.pending = [2]int{first, i}
	e.state = StateLocked
	return ClickResult{Outcome: OutcomeMismatch, First: first, Second: i}
}

// Revert hides the mismatched pair and unlocks the engine. It reports false
// when the engine is not locked.
func (e *Engine) Revert() bool {
	if e.state != StateLocked {
		return false
	}
	e.board.Revert(e.pending[0])
	e.board.Revert(e.pending[1])
	e.pending = [2]int{-1, -1}
	e.state = StateIdle
	return true
}
