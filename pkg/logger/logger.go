package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSize = 10
	maxBack = 5
	maxAge  = 30
)

type options struct {
	level   zerolog.Level
	console io.Writer
}

type Option func(*options) error

// WithLevel sets the minimum level written to the log file.
func WithLevel(level string) Option {
	return func(o *options) error {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", level, err)
		}
		o.level = lvl
		return nil
	}
}

// WithConsole echoes warnings and errors to w in human readable form.
// The interactive prompt owns stdout, so callers pass stderr here.
func WithConsole(w io.Writer) Option {
	return func(o *options) error {
		o.console = w
		return nil
	}
}

// NewLogger builds the application logger. Records go to a rotating JSON file at
// filePath (skipped when empty) and optionally to a console writer.
func NewLogger(filePath, serviceName string, opts ...Option) (zerolog.Logger, error) {
	o := options{level: zerolog.DebugLevel}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return zerolog.Nop(), err
		}
	}

	var writers []io.Writer

	if o.console != nil {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        o.console,
			TimeFormat: time.RFC3339,
			NoColor:    false,
		}
		writers = append(writers, &zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: consoleWriter},
			Level:  zerolog.WarnLevel,
		})
	}

	if filePath != "" {
		fileRotator := &lumberjack.Logger{
			Filename:   filePath, // log file location
			MaxSize:    maxSize,  // megabytes before rotation
			MaxBackups: maxBack,  // number of old files to retain
			MaxAge:     maxAge,   // days to retain rotated files
			Compress:   true,     // gzip old log files
		}
		writers = append(writers, fileRotator)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger().
		Level(o.level)

	logger.Info().
		Str("logsFilePath", filePath).
		Str("serviceName", serviceName).
		Msg("Logger initialized with file rotation")

	return logger, nil
}
