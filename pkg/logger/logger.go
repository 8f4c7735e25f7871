package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/randomgive/giveaway-bot/pkg/logger/types"
)

var (
	Log     *types.Logger
	logHook types.LogHook
)

// Config holds logger initialization options.
type Config struct {
	Debug        bool           // enable debug level
	TimeLocation *time.Location // time zone for timestamps (default: UTC)
	LogToFile    bool           // duplicate output to a file
	LogsDir      string         // directory for log files (default: working directory)
}

// SetLogHook sets a hook that receives every log entry. Used to mirror
// logs to a Telegram channel.
func SetLogHook(hook types.LogHook) {
	Log.Debug("Log hook set")
	logHook = hook
}

// Init builds the global logger. It must run before any Named call.
func Init(config Config) error {
	if config.TimeLocation == nil {
		config.TimeLocation = time.UTC
	}

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.In(config.TimeLocation).Format("2006-01-02 15:04:05"))
		},
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level),
	}

	if config.LogToFile {
		fileCore, err := newFileCore(encoderConfig, config.LogsDir, level)
		if err != nil {
			return err
		}
		cores = append(cores, fileCore)
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.Hooks(func(entry zapcore.Entry) error {
		if logHook != nil {
			logHook(types.Log{
				Timestamp:  entry.Time,
				Caller:     entry.Caller.String(),
				LoggerName: entry.LoggerName,
				Level:      entry.Level,
				Message:    entry.Message,
			})
		}
		return nil
	}))

	Log = &types.Logger{
		SugaredLogger: log.Named("main").Sugar(),
		Name:          "main",
	}
	return nil
}

// Named returns a child logger ("bot", "giveaway", etc.).
func Named(name string) (*types.Logger, error) {
	if Log == nil {
		return nil, fmt.Errorf("logger is not initialized")
	}
	return &types.Logger{
		SugaredLogger: Log.SugaredLogger.Named(name),
		Name:          name,
	}, nil
}

func newFileCore(encoderConfig zapcore.EncoderConfig, logsDir string, level zapcore.Level) (zapcore.Core, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path := wd
	if logsDir != "" {
		path = filepath.Join(wd, logsDir)
	}
	if err = os.MkdirAll(path, os.ModePerm); err != nil {
		return nil, err
	}

	// JSON and no colors in files.
	fileEncoderConfig := encoderConfig
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	name := filepath.Join(path, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02 15:04")))
	file, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(file), level), nil
}
