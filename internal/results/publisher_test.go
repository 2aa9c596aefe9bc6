package results

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFields(t *testing.T) {
	s := Summary{
		SessionID:      "abc",
		Difficulty:     "easy",
		ElapsedSeconds: 10,
		Moves:          4,
		StressIndex:    67,
		Band:           "high",
		FinishedAt:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	data, err := Encode(s)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "abc", m["session_id"])
	assert.Equal(t, float64(67), m["stress_index"])
	assert.Equal(t, "2024-01-02T03:04:05Z", m["finished_at"])
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Summary{}))
}

func TestConnectFailsWithoutServer(t *testing.T) {
	// Nothing listens on port 1.
	_, err := Connect("nats://127.0.0.1:1", "")
	assert.Error(t, err)
}
