package log

import (
	"fmt"
	"io"
	"sync"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]GameEvent(nil), l.events...)
}

// Drain returns all logged events and clears the buffer. Sequence numbers
// keep counting.
func (l *MemoryLogger) Drain() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	events := l.events
	l.events = nil
	return events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// shortSession trims a session token for display.
func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	diff := e.Difficulty
	// Pad difficulty to 6 chars for alignment
	for len(diff) < 6 {
		diff += " "
	}
	return fmt.Sprintf("%-8s %s M%-3d| %s", shortSession(e.Session), diff, e.Move, e.Details)
}

// --- Helper constructors for common events ---

func NewStartEvent(session, difficulty string, pairs int) GameEvent {
	return GameEvent{
		Session:    session,
		Difficulty: difficulty,
		Type:       EventStart,
		Card:       -1,
		Details:    fmt.Sprintf("=== New %s game (%d pairs) ===", difficulty, pairs),
	}
}

func NewFlipEvent(session, difficulty string, move, card, value int) GameEvent {
	return GameEvent{
		Session:    session,
		Difficulty: difficulty,
		Move:       move,
		Type:       EventFlip,
		Card:       card,
		Details:    fmt.Sprintf("Card %d flipped (%d)", card+1, value),
	}
}

func NewMatchEvent(session, difficulty string, move, first, second, value int) GameEvent {
	return GameEvent{
		Session:    session,
		Difficulty: difficulty,
		Move:       move,
		Type:       EventMatch,
		Card:       second,
		Details:    fmt.Sprintf("Cards %d and %d match (%d)", first+1, second+1, value),
	}
}

func NewMismatchEvent(session, difficulty string, move, first, second int) GameEvent {
	return GameEvent{
		Session:    session,
		Difficulty: difficulty,
		Move:       move,
		Type:       EventMismatch,
		Card:       second,
		Details:    fmt.Sprintf("Cards %d and %d do not match", first+1, second+1),
	}
}

func NewRevertEvent(session, difficulty string, move, first, second int) GameEvent {
	return GameEvent{
		Session:    session,
		Difficulty: difficulty,
		Move:       move,
		Type:       EventRevert,
		Card:       -1,
		Details:    fmt.Sprintf("Cards %d and %d turned face down", first+1, second+1),
	}
}

func NewCompleteEvent(session, difficulty string, move, elapsed, stress int, band string) GameEvent {
	return GameEvent{
		Session:    session,
		Difficulty: difficulty,
		Move:       move,
		Type:       EventComplete,
		Card:       -1,
		Details:    fmt.Sprintf("Board cleared in %ds, %d moves, stress %d (%s)", elapsed, move, stress, band),
	}
}

func NewScoreSavedEvent(session, difficulty string, move int, clock string) GameEvent {
	return GameEvent{
		Session:    session,
		Difficulty: difficulty,
		Move:       move,
		Type:       EventScoreSaved,
		Card:       -1,
		Details:    fmt.Sprintf("Score saved: %s, %d moves", clock, move),
	}
}

func NewSoundUnlockedEvent(session string) GameEvent {
	return GameEvent{
		Session: session,
		Type:    EventSoundUnlocked,
		Card:    -1,
		Details: "Audio unlocked",
	}
}

func NewSoundSelectedEvent(session, track string) GameEvent {
	return GameEvent{
		Session: session,
		Type:    EventSoundSelected,
		Card:    -1,
		Details: fmt.Sprintf("Ambient sound → %s", track),
	}
}

func NewSoundRejectedEvent(session, track, reason string) GameEvent {
	return GameEvent{
		Session: session,
		Type:    EventSoundRejected,
		Card:    -1,
		Details: fmt.Sprintf("Ambient sound %s rejected (%s)", track, reason),
	}
}

func NewAudioFailureEvent(session, src, reason string) GameEvent {
	return GameEvent{
		Session: session,
		Type:    EventAudioFailure,
		Card:    -1,
		Details: fmt.Sprintf("Playback of %s failed: %s", src, reason),
	}
}
