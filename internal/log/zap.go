package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZap builds the operational logger. Output goes to stderr so the MCP
// stdio transport stays clean.
func NewZap(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

// ZapLogger forwards game events to an operational logger at debug level
// and keeps nothing in memory.
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.logger.Debug(event.Details,
		zap.String("event", event.Type.String()),
		zap.String("session", event.Session),
		zap.String("difficulty", event.Difficulty),
		zap.Int("move", event.Move),
		zap.Int("card", event.Card),
	)
}

func (l *ZapLogger) Events() []GameEvent { return nil }
