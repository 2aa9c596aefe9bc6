package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventStart EventType = iota
	EventFlip
	EventMatch
	EventMismatch
	EventRevert
	EventComplete
	EventScoreSaved
	EventSoundUnlocked
	EventSoundSelected
	EventSoundRejected
	EventAudioFailure
)

func (e EventType) String() string {
	switch e {
	case EventStart:
		return "Start"
	case EventFlip:
		return "Flip"
	case EventMatch:
		return "Match"
	case EventMismatch:
		return "Mismatch"
	case EventRevert:
		return "Revert"
	case EventComplete:
		return "Complete"
	case EventScoreSaved:
		return "ScoreSaved"
	case EventSoundUnlocked:
		return "SoundUnlocked"
	case EventSoundSelected:
		return "SoundSelected"
	case EventSoundRejected:
		return "SoundRejected"
	case EventAudioFailure:
		return "AudioFailure"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game session.
type GameEvent struct {
	Seq        int       // monotonic sequence number
	Session    string    // session token the event belongs to
	Difficulty string    // difficulty of the session
	Move       int       // move count when the event happened
	Type       EventType // event type
	Card       int       // card index, -1 if not applicable
	Details    string    // human-readable detail string
}
