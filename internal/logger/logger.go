// Package logger configures the zerolog diagnostic channel.
//
// The terminal belongs to the game screen, so log output goes to a file
// rather than stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	milliTimeFormat = "2006-01-02T15:04:05.000Z07:00"
	defaultLogFile  = "cityhall.log"
)

// Init configures the global logger from LOG_LEVEL and LOG_FILE and returns
// a closer for the log file.
func Init() (io.Closer, error) {
	zerolog.TimeFieldFormat = milliTimeFormat
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 24
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	zerolog.SetGlobalLevel(ParseLevel(os.Getenv("LOG_LEVEL")))

	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = defaultLogFile
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}

	log.Logger = New(zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: milliTimeFormat,
		NoColor:    true,
	})

	log.Info().
		Str("level", zerolog.GlobalLevel().String()).
		Str("file", logFile).
		Msg("Logger initialized")

	return f, nil
}

// New builds a logger with timestamps and callers on w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Get returns the global logger instance.
func Get() zerolog.Logger {
	return log.Logger
}
