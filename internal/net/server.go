package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/peterkuimelis/memmatch/internal/session"
)

// ErrUnknownMessage is returned by Dispatch for unrecognized message types.
var ErrUnknownMessage = errors.New("unknown message type")

// Dispatch applies one client message to the controller. Game-level
// refusals are rendered by the controller and not returned.
func Dispatch(ctrl *session.Controller, msg ClientMessage) error {
	switch msg.Type {
	case MsgDifficulty:
		ctrl.SelectDifficulty(msg.Difficulty)
	case MsgStart:
		ctrl.StartGame()
	case MsgFlip:
		ctrl.Click(msg.Index)
	case MsgSave:
		if _, err := ctrl.SaveScore(); err != nil && !errors.Is(err, session.ErrNoGame) {
			return err
		}
	case MsgShowScores:
		ctrl.ShowBestScores()
	case MsgEnableSound:
		ctrl.EnableSound()
	case MsgSound:
		_ = ctrl.SelectSound(msg.Track)
	case MsgAudioError:
		ctrl.ReportAudioFailure(msg.Src, msg.Reason)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// Serve reads client messages from dec and dispatches them until the
// stream ends or ctx is cancelled. A clean end of stream returns nil.
func Serve(ctx context.Context, dec Decoder, ctrl *session.Controller, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ClientMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		if err := Dispatch(ctrl, msg); err != nil {
			logger.Warn("dispatch failed", zap.String("type", msg.Type), zap.Error(err))
		}
	}
}

// PlayLocal runs a session in-process and plays it through the terminal
// REPL over a pipe.
func PlayLocal(ctx context.Context, cfg session.Config, deps session.Deps, in io.Reader, out io.Writer) error {
	serverConn, clientConn := net.Pipe()

	deps.Renderer = NewStreamRenderer(json.NewEncoder(serverConn))
	ctrl := session.New(cfg, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- Serve(ctx, json.NewDecoder(serverConn), ctrl, deps.Logger)
	}()

	client := NewClient(clientConn, in, out)
	err := client.RunREPL(ctx, cfg.Difficulty.String())

	// Closing the pipe first unblocks a tick that is mid-send.
	clientConn.Close()
	serverConn.Close()
	ctrl.Close()
	if serr := <-errCh; err == nil {
		err = serr
	}
	return err
}
