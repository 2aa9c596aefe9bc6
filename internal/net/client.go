package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/peterkuimelis/memmatch/internal/game"
)

var (
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2a3850"))
	flippedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107"))
	matchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	cellStyle    = lipgloss.NewStyle().PaddingRight(1)
	resultStyle  = lipgloss.NewStyle().Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 1)
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

const helpText = `Commands:
  flip N | N          flip card N
  new                 start a new game
  difficulty NAME     easy, medium or hard (applies to the next game)
  save                save the current time and moves
  scores              show best scores
  enable              enable sound
  sound NAME          none, rain, waves or chimes
  board               redraw the board
  help                show this help
  quit                leave`

// Client is the terminal REPL for one session. Server messages are read on
// their own goroutine so the session can always send.
type Client struct {
	conn io.ReadWriter
	in   io.Reader

	mu      sync.Mutex // guards out and the fields below
	out     io.Writer
	layout  game.Layout
	cards   []game.CardView
	moves   int
	matches int
	timer   string
}

// NewClient creates a REPL over conn reading commands from in.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out, timer: game.FormatClock(0)}
}

// RunREPL selects difficulty, starts a game and handles commands until quit,
// end of input, a broken connection or ctx cancellation.
func (c *Client) RunREPL(ctx context.Context, difficulty string) error {
	enc := json.NewEncoder(c.conn)

	readErr := make(chan error, 1)
	go func() { readErr <- c.readLoop() }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	c.printf("%s\n\n", helpText)
	if difficulty != "" {
		if err := enc.Encode(ClientMessage{Type: MsgDifficulty, Difficulty: difficulty}); err != nil {
			return fmt.Errorf("send difficulty: %w", err)
		}
	}
	if err := enc.Encode(ClientMessage{Type: MsgStart}); err != nil {
		return fmt.Errorf("send start: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			msg, quit, err := ParseCommand(line)
			if quit {
				return nil
			}
			if err != nil {
				c.printf("%v\n", err)
				continue
			}
			switch msg.Type {
			case "":
				continue
			case "help":
				c.printf("%s\n", helpText)
				continue
			case MsgBoard:
				c.mu.Lock()
				c.printBoard()
				c.mu.Unlock()
				continue
			}
			if err := enc.Encode(msg); err != nil {
				return fmt.Errorf("send %s: %w", msg.Type, err)
			}
		}
	}
}

// ParseCommand turns one REPL line into a client message. Local commands
// come back as types "help" and "board"; a blank line has an empty type.
func ParseCommand(line string) (msg ClientMessage, quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return ClientMessage{}, false, nil
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch fields[0] {
	case "quit", "exit", "q":
		return ClientMessage{}, true, nil
	case "help", "?":
		return ClientMessage{Type: "help"}, false, nil
	case "board", "b":
		return ClientMessage{Type: MsgBoard}, false, nil
	case "new", "start", "n":
		return ClientMessage{Type: MsgStart}, false, nil
	case "save":
		return ClientMessage{Type: MsgSave}, false, nil
	case "scores":
		return ClientMessage{Type: MsgShowScores}, false, nil
	case "enable":
		return ClientMessage{Type: MsgEnableSound}, false, nil
	case "difficulty", "d":
		if arg == "" {
			return ClientMessage{}, false, fmt.Errorf("usage: difficulty easy|medium|hard")
		}
		return ClientMessage{Type: MsgDifficulty, Difficulty: arg}, false, nil
	case "sound", "s":
		if arg == "" {
			return ClientMessage{}, false, fmt.Errorf("usage: sound none|rain|waves|chimes")
		}
		return ClientMessage{Type: MsgSound, Track: arg}, false, nil
	case "flip", "f":
		return parseFlip(arg)
	}
	if _, err := strconv.Atoi(fields[0]); err == nil {
		return parseFlip(fields[0])
	}
	return ClientMessage{}, false, fmt.Errorf("unknown command %q (try help)", fields[0])
}

func parseFlip(arg string) (ClientMessage, bool, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return ClientMessage{}, false, fmt.Errorf("usage: flip N")
	}
	return ClientMessage{Type: MsgFlip, Index: n}, false, nil
}

func (c *Client) readLoop() error {
	dec := json.NewDecoder(c.conn)
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if err == io.EOF || err == io.ErrClosedPipe {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg ServerMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Type {
	case MsgBoard:
		if msg.Layout != nil {
			c.layout = *msg.Layout
		}
		c.cards = msg.Cards
		c.printBoard()
	case MsgStats:
		c.moves, c.matches = msg.Moves, msg.Matches
		fmt.Fprintf(c.out, "Moves: %d  Matches: %d/%d  Time: %s\n", c.moves, c.matches, c.layout.Pairs, c.timer)
	case MsgTimer:
		// Ticks arrive several times a second; only remember them.
		c.timer = msg.Timer
	case MsgResult:
		body := fmt.Sprintf("%s\nStress index: %s", msg.Text, msg.Stress)
		fmt.Fprintln(c.out, resultStyle.Render(body))
	case MsgScores:
		fmt.Fprintf(c.out, "Best scores (%s):\n", msg.Difficulty)
		if len(msg.Scores) == 0 {
			fmt.Fprintln(c.out, "  No scores yet")
		}
		for _, s := range msg.Scores {
			fmt.Fprintf(c.out, "  %s\n", s.Text)
		}
	case MsgSoundEnabled:
		fmt.Fprintln(c.out, "Sound enabled.")
	case MsgAmbientPlay:
		fmt.Fprintf(c.out, "Ambient: %s\n", msg.Track)
	case MsgAmbientStop:
		fmt.Fprintln(c.out, "Ambient: off")
	case MsgAlert:
		fmt.Fprintln(c.out, alertStyle.Render(msg.Message))
	}
}

// printBoard draws the grid. Must be called with mu held.
func (c *Client) printBoard() {
	if len(c.cards) == 0 {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, FormatBoard(c.layout, c.cards))
}

// FormatBoard renders cards as a grid of the layout's width. Hidden cards
// show "?", face-up cards their value.
func FormatBoard(layout game.Layout, cards []game.CardView) string {
	cols := layout.Columns
	if cols < 1 {
		cols = len(cards)
	}
	var rows []string
	for start := 0; start < len(cards); start += cols {
		end := start + cols
		if end > len(cards) {
			end = len(cards)
		}
		var cells []string
		for _, cv := range cards[start:end] {
			cells = append(cells, cellStyle.Render(formatCard(cv)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatCard(cv game.CardView) string {
	switch cv.Status {
	case game.CardFlipped.String():
		return flippedStyle.Render(fmt.Sprintf("[%2d:%2d]", cv.Index, cv.Value))
	case game.CardMatched.String():
		return matchedStyle.Render(fmt.Sprintf("[%2d:%2d]", cv.Index, cv.Value))
	default:
		return hiddenStyle.Render(fmt.Sprintf("[%2d: ?]", cv.Index))
	}
}

func (c *Client) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}
