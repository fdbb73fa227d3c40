package logger

import (
	"context"
	"time"

	"go.uber.org/zap/zapcore"
)

// Level represents different logging levels.
type Level int8

// A set of possible logging levels.
const (
	LevelDebug = Level(zapcore.DebugLevel)
	LevelInfo  = Level(zapcore.InfoLevel)
	LevelWarn  = Level(zapcore.WarnLevel)
	LevelError = Level(zapcore.ErrorLevel)
)

func (l Level) zap() zapcore.Level {
	return zapcore.Level(l)
}

// ParseLevel converts a textual level such as "debug" into a Level. Unknown
// values map to LevelInfo.
func ParseLevel(value string) Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(value)); err != nil {
		return LevelInfo
	}

	return Level(lvl)
}

// Record represents the data that is being logged.
type Record struct {
	Time       time.Time
	Message    string
	Level      Level
	Attributes map[string]any
}

// EventFn is a function to be executed when configured against a log level.
type EventFn func(ctx context.Context, r Record)

// Events contains an assignment of an event function to a log level.
type Events struct {
	Debug EventFn
	Info  EventFn
	Warn  EventFn
	Error EventFn
}
