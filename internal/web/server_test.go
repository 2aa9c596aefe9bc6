package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/memmatch/internal/game"
	mmnet "github.com/peterkuimelis/memmatch/internal/net"
	"github.com/peterkuimelis/memmatch/internal/score"
	"github.com/peterkuimelis/memmatch/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *score.Store) {
	t.Helper()
	assets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, "sound_rain.mp3"), []byte("ID3"), 0o644))

	store := score.NewStore(score.NewMemoryKV(), nil)
	cfg := session.DefaultConfig()
	cfg.Seed = 9
	srv := NewServer(Options{
		AssetsDir: assets,
		Session:   cfg,
		Scores:    store,
		Clock:     game.NewManualClock(time.Unix(0, 0)),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestStaticRoutes(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Memory Match")

	status, body = get(t, ts.URL+"/static/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "WebSocket")

	status, body = get(t, ts.URL+"/assets/sound_rain.mp3")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ID3", body)

	status, _ = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
}

func TestDifficultiesAPI(t *testing.T) {
	ts, _ := newTestServer(t)
	status, body := get(t, ts.URL+"/api/difficulties")
	require.Equal(t, http.StatusOK, status)

	var infos []DifficultyInfo
	require.NoError(t, json.Unmarshal([]byte(body), &infos))
	assert.Equal(t, []DifficultyInfo{
		{Name: "easy", Pairs: 3, Columns: 3},
		{Name: "medium", Pairs: 6, Columns: 4},
		{Name: "hard", Pairs: 9, Columns: 6},
	}, infos)
}

func TestScoresAPI(t *testing.T) {
	ts, store := newTestServer(t)
	_, err := store.Save("easy", score.NewRecord("00:12", 5, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = store.Save("easy", score.NewRecord("00:09", 4, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	status, body := get(t, ts.URL+"/api/scores/easy")
	require.Equal(t, http.StatusOK, status)
	var views []mmnet.ScoreView
	require.NoError(t, json.Unmarshal([]byte(body), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "00:09", views[0].Time, "newest first")

	status, body = get(t, ts.URL+"/api/scores/medium")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", strings.TrimSpace(body))

	status, _ = get(t, ts.URL+"/api/scores/nightmare")
	assert.Equal(t, http.StatusNotFound, status)
}

func readUntil(t *testing.T, ctx context.Context, c *websocket.Conn, typ string) mmnet.ServerMessage {
	t.Helper()
	for {
		var msg mmnet.ServerMessage
		require.NoError(t, wsjson.Read(ctx, c, &msg))
		if msg.Type == typ {
			return msg
		}
	}
}

func TestWebSocketSession(t *testing.T) {
	ts, _ := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer c.CloseNow()

	first := readUntil(t, ctx, c, mmnet.MsgScores)
	assert.Equal(t, "medium", first.Difficulty)

	require.NoError(t, wsjson.Write(ctx, c, mmnet.ClientMessage{Type: mmnet.MsgDifficulty, Difficulty: "easy"}))
	assert.Equal(t, "easy", readUntil(t, ctx, c, mmnet.MsgScores).Difficulty)

	require.NoError(t, wsjson.Write(ctx, c, mmnet.ClientMessage{Type: mmnet.MsgStart}))
	board := readUntil(t, ctx, c, mmnet.MsgBoard)
	require.Len(t, board.Cards, 6)
	assert.Equal(t, 3, board.Layout.Columns)
	assert.Equal(t, "00:00", readUntil(t, ctx, c, mmnet.MsgTimer).Timer)

	require.NoError(t, wsjson.Write(ctx, c, mmnet.ClientMessage{Type: mmnet.MsgFlip, Index: 4}))
	board = readUntil(t, ctx, c, mmnet.MsgBoard)
	assert.Equal(t, "flipped", board.Cards[4].Status)
	assert.NotZero(t, board.Cards[4].Value)

	require.NoError(t, wsjson.Write(ctx, c, mmnet.ClientMessage{Type: mmnet.MsgSound, Track: "waves"}))
	alert := readUntil(t, ctx, c, mmnet.MsgAlert)
	assert.Contains(t, alert.Message, "Enable Sound")
	assert.Equal(t, "none", readUntil(t, ctx, c, mmnet.MsgSoundSelection).Track)

	require.NoError(t, wsjson.Write(ctx, c, mmnet.ClientMessage{Type: mmnet.MsgEnableSound}))
	assert.True(t, readUntil(t, ctx, c, mmnet.MsgSoundEnabled).Enabled)
	require.NoError(t, wsjson.Write(ctx, c, mmnet.ClientMessage{Type: mmnet.MsgSound, Track: "waves"}))
	play := readUntil(t, ctx, c, mmnet.MsgAmbientPlay)
	assert.Equal(t, "/assets/sound_waves.mp3", play.Src)

	c.Close(websocket.StatusNormalClosure, "")
}
