// Package session owns the game currently being played on one connection
// and everything that happens around it: timers, sound, scores and the
// renderer that shows it.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/memmatch/internal/audio"
	"github.com/peterkuimelis/memmatch/internal/game"
	"github.com/peterkuimelis/memmatch/internal/log"
	"github.com/peterkuimelis/memmatch/internal/results"
	"github.com/peterkuimelis/memmatch/internal/score"
)

const (
	DefaultRevertDelay  = 700 * time.Millisecond
	DefaultTickInterval = 300 * time.Millisecond
)

// SavedMessage is shown after a score is stored.
const SavedMessage = "Score saved locally!"

// ErrNoGame is returned by operations that need a started game.
var ErrNoGame = errors.New("no game in progress")

// Config holds the tunables of a controller.
type Config struct {
	RevertDelay  time.Duration
	TickInterval time.Duration
	Difficulty   game.Difficulty // initial selection
	Seed         int64           // deck RNG seed (0 for random)
}

// DefaultConfig returns the reference timings on a medium board.
func DefaultConfig() Config {
	return Config{
		RevertDelay:  DefaultRevertDelay,
		TickInterval: DefaultTickInterval,
		Difficulty:   game.Medium,
	}
}

// Deps are the collaborators a controller drives. Nil fields get
// do-nothing defaults, except Scores and Mixer which are created in memory.
type Deps struct {
	Clock     game.Clock
	Renderer  Renderer
	Scores    *score.Store
	Mixer     *audio.Mixer
	Events    log.EventLogger
	Logger    *zap.Logger
	Publisher results.Publisher
}

// GameSession is one dealt board and its timers. It is replaced wholesale
// by every StartGame.
type GameSession struct {
	ID         uuid.UUID
	Difficulty game.Difficulty
	Layout     game.Layout

	engine *game.Engine
	ticker game.Timer
	revert game.Timer
	clock  string // last timer display
	result *game.Result
}

// Controller serializes all input for one player.
type Controller struct {
	mu  sync.Mutex
	cfg Config

	clock     game.Clock
	renderer  Renderer
	scores    *score.Store
	mixer     *audio.Mixer
	events    log.EventLogger
	logger    *zap.Logger
	publisher results.Publisher
	rng       *rand.Rand

	difficulty game.Difficulty
	current    *GameSession
	closed     bool
}

// New creates a controller with no game started.
func New(cfg Config, deps Deps) *Controller {
	if cfg.RevertDelay <= 0 {
		cfg.RevertDelay = DefaultRevertDelay
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if !cfg.Difficulty.Valid() {
		cfg.Difficulty = game.Medium
	}
	if deps.Clock == nil {
		deps.Clock = game.RealClock{}
	}
	if deps.Renderer == nil {
		deps.Renderer = NopRenderer{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Scores == nil {
		deps.Scores = score.NewStore(score.NewMemoryKV(), deps.Logger)
	}
	if deps.Mixer == nil {
		deps.Mixer = audio.NewMixer("assets", deps.Logger)
	}
	if deps.Events == nil {
		deps.Events = log.NewMemoryLogger()
	}
	if deps.Publisher == nil {
		deps.Publisher = results.Nop{}
	}
	return &Controller{
		cfg:        cfg,
		clock:      deps.Clock,
		renderer:   deps.Renderer,
		scores:     deps.Scores,
		mixer:      deps.Mixer,
		events:     deps.Events,
		logger:     deps.Logger,
		publisher:  deps.Publisher,
		rng:        game.NewRand(cfg.Seed),
		difficulty: cfg.Difficulty,
	}
}

// Difficulty returns the current selection.
func (c *Controller) Difficulty() game.Difficulty {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.difficulty
}

// SelectDifficulty sets the board size for the next StartGame and shows
// that difficulty's history. Unknown names select hard.
func (c *Controller) SelectDifficulty(name string) game.Difficulty {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.difficulty = game.Normalize(name)
	c.showBestScores(c.difficulty)
	return c.difficulty
}

// StartGame deals a new board for the selected difficulty, discarding any
// game in progress.
func (c *Controller) StartGame() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev := c.current; prev != nil {
		prev.stopTimers()
	}
	c.renderer.HideResult()

	d := c.difficulty
	layout := d.Layout()
	stats := game.NewStats(layout.Pairs)
	stats.Start(c.clock.Now())

	gs := &GameSession{
		ID:         uuid.New(),
		Difficulty: d,
		Layout:     layout,
		engine:     game.NewEngine(game.GenerateDeck(layout.Pairs, c.rng), stats),
		clock:      game.FormatClock(0),
	}
	c.current = gs

	c.renderer.RenderBoard(layout, gs.engine.Board().Views())
	c.renderer.SetStats(0, 0)
	c.renderer.SetTimer(gs.clock)
	c.events.Log(log.NewStartEvent(gs.ID.String(), d.String(), layout.Pairs))
	c.armTicker(gs)
	return gs.ID
}

// Click flips the card at index. Clicks with no game, during the mismatch
// reveal, or on resolved cards are ignored.
func (c *Controller) Click(index int) game.ClickResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs := c.current
	if gs == nil {
		return game.ClickResult{Outcome: game.OutcomeIgnored, First: index, Second: -1}
	}

	r := gs.engine.Click(index)
	if r.Outcome == game.OutcomeIgnored {
		return r
	}

	id, diff := gs.ID.String(), gs.Difficulty.String()
	stats := gs.engine.Stats()
	board := gs.engine.Board()

	switch r.Outcome {
	case game.OutcomeFlipped:
		c.events.Log(log.NewFlipEvent(id, diff, stats.Moves, r.First, board.ValueAt(r.First)))
	case game.OutcomeMatch, game.OutcomeComplete:
		c.events.Log(log.NewFlipEvent(id, diff, stats.Moves, r.Second, board.ValueAt(r.Second)))
		c.events.Log(log.NewMatchEvent(id, diff, stats.Moves, r.First, r.Second, board.ValueAt(r.First)))
	case game.OutcomeMismatch:
		c.events.Log(log.NewFlipEvent(id, diff, stats.Moves, r.Second, board.ValueAt(r.Second)))
		c.events.Log(log.NewMismatchEvent(id, diff, stats.Moves, r.First, r.Second))
		c.armRevert(gs)
	}

	c.renderer.RenderBoard(gs.Layout, board.Views())
	c.renderer.SetStats(stats.Moves, stats.Matches)

	if r.Outcome.IsMatch() {
		c.playEffect(audio.EffectCorrect)
	}
	if r.Outcome == game.OutcomeComplete {
		c.endGame(gs)
	}
	return r
}

// endGame settles a completed board. Must be called with mu held.
func (c *Controller) endGame(gs *GameSession) {
	gs.stopTimers()
	c.playEffect(audio.EffectComplete)

	result := gs.engine.Stats().Finalize(c.clock.Now())
	gs.result = &result
	c.renderer.ShowResult(result.Text(), result.StressIndex)
	c.events.Log(log.NewCompleteEvent(gs.ID.String(), gs.Difficulty.String(), result.Moves,
		result.ElapsedSeconds, result.StressIndex, result.Band.String()))

	summary := results.Summary{
		SessionID:      gs.ID.String(),
		Difficulty:     gs.Difficulty.String(),
		ElapsedSeconds: result.ElapsedSeconds,
		Moves:          result.Moves,
		StressIndex:    result.StressIndex,
		Band:           result.Band.String(),
		FinishedAt:     result.FinishedAt,
	}
	if err := c.publisher.Publish(context.Background(), summary); err != nil {
		c.logger.Warn("publish result failed", zap.String("session", summary.SessionID), zap.Error(err))
	}

	c.showBestScores(gs.Difficulty)
}

// SaveScore stores the current game's last displayed time and move count
// under the difficulty it was dealt at.
func (c *Controller) SaveScore() ([]score.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs := c.current
	if gs == nil {
		return nil, ErrNoGame
	}
	moves := gs.engine.Stats().Moves
	rec := score.NewRecord(gs.clock, moves, c.clock.Now())
	records, err := c.scores.Save(gs.Difficulty.String(), rec)
	if err != nil {
		c.logger.Error("save score failed", zap.String("difficulty", gs.Difficulty.String()), zap.Error(err))
		c.renderer.Alert("Could not save score.")
		return nil, fmt.Errorf("save score: %w", err)
	}
	c.events.Log(log.NewScoreSavedEvent(gs.ID.String(), gs.Difficulty.String(), moves, gs.clock))
	c.showBestScores(gs.Difficulty)
	c.renderer.Alert(SavedMessage)
	return records, nil
}

// ShowBestScores renders the selected difficulty's history, newest first.
func (c *Controller) ShowBestScores() []score.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showBestScores(c.difficulty)
}

func (c *Controller) showBestScores(d game.Difficulty) []score.Record {
	records := c.scores.Recent(d.String())
	c.renderer.ShowBestScores(d, records)
	return records
}

// EnableSound records the unlock gesture.
func (c *Controller) EnableSound() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mixer.Unlock() {
		return
	}
	c.events.Log(log.NewSoundUnlockedEvent(c.sessionID()))
	c.renderer.SetSoundEnabled(true)
}

// SelectSound changes the ambient track. Before EnableSound every track but
// none is refused and the selection reverts to none.
func (c *Controller) SelectSound(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	track, err := audio.ParseTrack(name)
	if err == nil {
		var sel audio.Selection
		sel, err = c.mixer.Select(track)
		if err == nil {
			c.events.Log(log.NewSoundSelectedEvent(c.sessionID(), string(sel.Track)))
			if sel.Stop {
				c.renderer.StopAmbient()
			} else {
				c.renderer.PlayAmbient(sel.Track, sel.Src, sel.Volume)
			}
			return nil
		}
	}

	c.events.Log(log.NewSoundRejectedEvent(c.sessionID(), name, err.Error()))
	if errors.Is(err, audio.ErrLocked) {
		c.renderer.Alert(audio.LockedMessage)
	} else {
		c.renderer.StopAmbient()
	}
	c.renderer.SetSoundSelection(audio.TrackNone)
	return err
}

// ReportAudioFailure logs a playback failure from the front end.
func (c *Controller) ReportAudioFailure(src, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mixer.ReportFailure(src, reason)
	c.events.Log(log.NewAudioFailureEvent(c.sessionID(), src, reason))
}

// Close stops the current game's timers. Callbacks that already fired and
// are waiting on the lock return without touching the display.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller) closeLocked() {
	c.closed = true
	if c.current != nil {
		c.current.stopTimers()
	}
}

// playEffect cues a sound effect. Must be called with mu held.
func (c *Controller) playEffect(e audio.Effect) {
	c.renderer.PlayEffect(e, c.mixer.EffectSource(e), audio.EffectVolume)
}

// sessionID is the current token or empty. Must be called with mu held.
func (c *Controller) sessionID() string {
	if c.current == nil {
		return ""
	}
	return c.current.ID.String()
}

// armTicker schedules the next timer display refresh. Must be called with mu held.
func (c *Controller) armTicker(gs *GameSession) {
	id := gs.ID
	gs.ticker = c.clock.AfterFunc(c.cfg.TickInterval, func() { c.tick(id) })
}

func (c *Controller) tick(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs := c.current
	if c.closed || gs == nil || gs.ID != id || gs.engine.State() == game.StateComplete {
		return
	}
	gs.clock = gs.engine.Stats().ClockDisplay(c.clock.Now())
	c.renderer.SetTimer(gs.clock)
	c.armTicker(gs)
}

// armRevert schedules the mismatch revert. Must be called with mu held.
func (c *Controller) armRevert(gs *GameSession) {
	id := gs.ID
	gs.revert = c.clock.AfterFunc(c.cfg.RevertDelay, func() { c.revertMismatch(id) })
}

func (c *Controller) revertMismatch(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gs := c.current
	if c.closed || gs == nil || gs.ID != id {
		return
	}
	first, second, ok := gs.engine.Pending()
	if !ok {
		return
	}
	gs.engine.Revert()
	gs.revert = nil
	c.events.Log(log.NewRevertEvent(gs.ID.String(), gs.Difficulty.String(), gs.engine.Stats().Moves, first, second))
	c.renderer.RenderBoard(gs.Layout, gs.engine.Board().Views())
}

func (gs *GameSession) stopTimers() {
	if gs.ticker != nil {
		gs.ticker.Stop()
		gs.ticker = nil
	}
	if gs.revert != nil {
		gs.revert.Stop()
		gs.revert = nil
	}
}
