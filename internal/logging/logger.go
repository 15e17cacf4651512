// Package logging adapts zerolog to core.Logger, grounded on
// JohnPitter-concord's internal/observability logger setup: structured,
// leveled, console-or-JSON output chosen at construction.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/nicksukie/livesub/internal/core"
)

// Config controls the zerolog sink.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // "json" or "console"
	Output io.Writer
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// ZerologAdapter wraps a zerolog.Logger behind core.Logger's four leveled
// methods, each accepting alternating key/value pairs the way the
// dispatcher and pipeline packages already call Warn/Error.
type ZerologAdapter struct {
	logger zerolog.Logger
}

func New(cfg Config) *ZerologAdapter {
	zerolog.TimeFieldFormat = time.RFC3339

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.Kitchen}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return &ZerologAdapter{
		logger: zerolog.New(output).Level(level).With().Timestamp().Str("service", "livesub").Logger(),
	}
}

func (z *ZerologAdapter) Debug(msg string, args ...interface{}) { z.log(z.logger.Debug(), msg, args) }
func (z *ZerologAdapter) Info(msg string, args ...interface{})  { z.log(z.logger.Info(), msg, args) }
func (z *ZerologAdapter) Warn(msg string, args ...interface{})  { z.log(z.logger.Warn(), msg, args) }
func (z *ZerologAdapter) Error(msg string, args ...interface{}) { z.log(z.logger.Error(), msg, args) }

func (z *ZerologAdapter) log(event *zerolog.Event, msg string, args []interface{}) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}

var _ core.Logger = (*ZerologAdapter)(nil)
