package types

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named sugared zap logger.
type Logger struct {
	*zap.SugaredLogger
	Name string
}

// Log is one log entry as seen by hooks.
type Log struct {
	Timestamp  time.Time
	Caller     string
	LoggerName string
	Level      zapcore.Level
	Message    string
}

// LogHook is called for every log entry.
type LogHook func(log Log)
