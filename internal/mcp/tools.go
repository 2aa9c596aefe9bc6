package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/game"
	mmnet "github.com/peterkuimelis/memmatch/internal/net"
	"github.com/peterkuimelis/memmatch/internal/session"
)

var (
	// activeSession is the singleton player session (one per stdio process).
	activeSession *GameSession
	sessionMu     sync.Mutex

	// options configure activeSession, set by main.
	options Options
)

// SetOptions sets how the session is built. Call before serving.
func SetOptions(opts Options) {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	options = opts
}

// currentSession returns the active session, creating it on first use.
func currentSession() *GameSession {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if activeSession == nil {
		activeSession = NewGameSession(options)
	}
	return activeSession
}

// Reset discards the active session.
func Reset() {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if activeSession != nil {
		activeSession.Close()
		activeSession = nil
	}
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(flipCardTool(), handleFlipCard)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(saveScoreTool(), handleSaveScore)
	s.AddTool(bestScoresTool(), handleBestScores)
	s.AddTool(enableSoundTool(), handleEnableSound)
	s.AddTool(selectSoundTool(), handleSelectSound)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Deal a new memory-match board, discarding any game in progress. "+
			"Cards are listed by 0-based index; hidden cards do not reveal their value. "+
			"The timer starts immediately."),
		mcp.WithString("difficulty", mcp.Description("easy (3 pairs), medium (6 pairs) or hard (9 pairs). Defaults to the current selection.")),
	)
}

func flipCardTool() mcp.Tool {
	return mcp.NewTool("flip_card",
		mcp.WithDescription("Flip the card at index. Turning a second card compares the pair: equal values stay matched, "+
			"different values are shown briefly (700ms) and then hidden again. Flips during that reveal are ignored."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the card to flip")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current board, stats, timer and accumulated events without changing anything. Read-only."),
	)
}

func saveScoreTool() mcp.Tool {
	return mcp.NewTool("save_score",
		mcp.WithDescription("Save the current game's displayed time and move count to the best-score history for its difficulty. "+
			"Only the 5 most recent scores are kept."),
	)
}

func bestScoresTool() mcp.Tool {
	return mcp.NewTool("best_scores",
		mcp.WithDescription("List saved scores, newest first. Read-only."),
		mcp.WithString("difficulty", mcp.Description("easy, medium or hard. Defaults to the current selection.")),
	)
}

func enableSoundTool() mcp.Tool {
	return mcp.NewTool("enable_sound",
		mcp.WithDescription("Unlock audio. Ambient tracks can only be selected after this."),
	)
}

func selectSoundTool() mcp.Tool {
	return mcp.NewTool("select_sound",
		mcp.WithDescription("Choose the ambient soundscape. Fails until enable_sound has been called, except for none."),
		mcp.WithString("track", mcp.Required(), mcp.Description("none, rain, waves or chimes")),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()

	if name := strings.TrimSpace(request.GetString("difficulty", "")); name != "" {
		if _, ok := game.ParseDifficulty(name); !ok {
			return mcp.NewToolResultErrorf("Unknown difficulty %q. Use easy, medium or hard.", name), nil
		}
		sess.ctrl.SelectDifficulty(name)
	}
	sess.ctrl.StartGame()

	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func handleFlipCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	view := sess.ctrl.Snapshot()
	if view.SessionID == "" {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(view.Cards) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(view.Cards)-1), nil
	}

	r := sess.ctrl.Click(index)
	resp := sess.response()
	resp.Outcome = r.Outcome.String()
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	resp := sess.response()
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleSaveScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	_, err := sess.ctrl.SaveScore()
	if errors.Is(err, session.ErrNoGame) {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to save score: %v", err), nil
	}

	resp := sess.response()
	resp.Scores = mmnet.ScoreViews(sess.renderer.lastScores())
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleBestScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()

	d := sess.ctrl.Difficulty()
	if name := strings.TrimSpace(request.GetString("difficulty", "")); name != "" {
		parsed, ok := game.ParseDifficulty(name)
		if !ok {
			return mcp.NewToolResultErrorf("Unknown difficulty %q. Use easy, medium or hard.", name), nil
		}
		d = parsed
	}

	records := sess.scores.Recent(d.String())
	if len(records) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No scores yet for %s.", d)), nil
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.String())
	}
	return mcp.NewToolResultText(fmt.Sprintf("Best scores (%s):\n%s", d, strings.Join(lines, "\n"))), nil
}

func handleEnableSound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	sess.ctrl.EnableSound()
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}

func handleSelectSound(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := currentSession()
	track := request.GetString("track", "")

	err := sess.ctrl.SelectSound(track)
	switch {
	case errors.Is(err, audio.ErrLocked):
		sess.renderer.drain()
		return mcp.NewToolResultError(audio.LockedMessage), nil
	case errors.Is(err, audio.ErrUnknownTrack):
		sess.renderer.drain()
		return mcp.NewToolResultErrorf("Unknown track %q. Use none, rain, waves or chimes.", track), nil
	case err != nil:
		return mcp.NewToolResultErrorf("Failed to select sound: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.response())), nil
}
