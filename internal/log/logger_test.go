package log

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewStartEvent("abc", "easy", 3))
	l.Log(NewFlipEvent("abc", "easy", 0, 2, 1))

	events := l.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Seq != 1 || events[1].Seq != 2 {
		t.Errorf("unexpected sequence %d, %d", events[0].Seq, events[1].Seq)
	}
	if got := l.EventsOfType(EventFlip); len(got) != 1 || got[0].Card != 2 {
		t.Errorf("flip events = %+v", got)
	}
	if l.LastEvent().Type != EventFlip {
		t.Errorf("last event = %v", l.LastEvent().Type)
	}
}

func TestMemoryLoggerDrain(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewSoundUnlockedEvent("s"))
	if got := l.Drain(); len(got) != 1 {
		t.Fatalf("drained %d events", len(got))
	}
	if got := l.Drain(); len(got) != 0 {
		t.Errorf("second drain returned %d events", len(got))
	}
	l.Log(NewSoundUnlockedEvent("s"))
	if l.LastEvent().Seq != 2 {
		t.Errorf("sequence restarted: %d", l.LastEvent().Seq)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewMismatchEvent("0123456789", "medium", 4, 0, 5))

	line := buf.String()
	if !strings.HasPrefix(line, "01234567 medium M4") {
		t.Errorf("unexpected prefix: %q", line)
	}
	if !strings.Contains(line, "Cards 1 and 6 do not match") {
		t.Errorf("unexpected details: %q", line)
	}
	if len(l.Events()) != 1 {
		t.Error("text logger should also keep events in memory")
	}
}

func TestEventTypeStrings(t *testing.T) {
	if EventComplete.String() != "Complete" {
		t.Errorf("got %q", EventComplete.String())
	}
	if EventType(99).String() != "Unknown" {
		t.Errorf("got %q", EventType(99).String())
	}
}

func TestNewZapRejectsBadLevel(t *testing.T) {
	if _, err := NewZap("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
	logger, err := NewZap("debug")
	if err != nil {
		t.Fatalf("NewZap: %v", err)
	}
	_ = logger.Sync()
}

func TestZapLoggerForwardsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewZapLogger(zap.New(core))
	l.Log(NewStartEvent("0123456789", "easy", 3))

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.ContextMap()["event"] != "Start" || entry.ContextMap()["session"] != "0123456789" {
		t.Errorf("unexpected fields %v", entry.ContextMap())
	}
	if l.Events() != nil {
		t.Error("ZapLogger should not retain events")
	}
}
