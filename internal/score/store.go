package score

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gammazero/deque"
	"go.uber.org/zap"
)

const (
	// KeyPrefix is prepended to the difficulty name to form the store key.
	KeyPrefix = "shp_best_"
	// HistoryLimit is how many records are kept per difficulty.
	HistoryLimit = 5
)

// isoLayout matches the millisecond UTC timestamps browsers emit.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is one saved result.
type Record struct {
	Time  string `json:"time"`
	Moves int    `json:"moves"`
	Date  string `json:"date"`
}

// NewRecord stamps a record with savedAt in UTC.
func NewRecord(clock string, moves int, savedAt time.Time) Record {
	return Record{Time: clock, Moves: moves, Date: savedAt.UTC().Format(isoLayout)}
}

// SavedAt parses the record's date.
func (r Record) SavedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.Date)
}

// String is the history line shown for a record.
func (r Record) String() string {
	date := r.Date
	if t, err := r.SavedAt(); err == nil {
		date = t.Local().Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%s — %d moves — %s", r.Time, r.Moves, date)
}

// Key returns the store key for a difficulty.
func Key(difficulty string) string {
	return KeyPrefix + difficulty
}

// Store reads and appends per-difficulty history.
type Store struct {
	kv     KeyValueStore
	logger *zap.Logger
}

// NewStore wraps kv. A nil logger discards store warnings.
func NewStore(kv KeyValueStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// List returns the stored history oldest first. Missing or unreadable data
// reads as an empty history.
func (s *Store) List(difficulty string) []Record {
	key := Key(difficulty)
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("score history unreadable", zap.String("key", key), zap.Error(err))
		return []Record{}
	}
	if !ok || raw == "" {
		return []Record{}
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("score history malformed", zap.String("key", key), zap.Error(err))
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

// Recent returns the stored history newest first.
func (s *Store) Recent(difficulty string) []Record {
	records := s.List(difficulty)
	out := make([]Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// Save appends r and keeps only the newest HistoryLimit records. It returns
// the stored history, oldest first.
func (s *Store) Save(difficulty string, r Record) ([]Record, error) {
	var window deque.Deque[Record]
	for _, existing := range s.List(difficulty) {
		window.PushBack(existing)
	}
	window.PushBack(r)
	for window.Len() > HistoryLimit {
		window.PopFront()
	}

	records := make([]Record, window.Len())
	for i := range records {
		records[i] = window.At(i)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode score history: %w", err)
	}
	if err := s.kv.Set(Key(difficulty), string(data)); err != nil {
		return nil, fmt.Errorf("save score history: %w", err)
	}
	return records, nil
}
