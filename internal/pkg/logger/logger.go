// Package logger owns the process-wide zerolog logger. Packages either log
// through the helpers below or keep a Component logger of their own.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel is a level name as written in the configuration
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

var levels = map[LogLevel]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
}

var base zerolog.Logger

// ParseLevel maps a configuration string onto a LogLevel; unknown names are info
func ParseLevel(s string) LogLevel {
	l := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levels[l]; ok {
		return l
	}
	return InfoLevel
}

// Config selects the level and the output format
type Config struct {
	Level LogLevel
	// Pretty writes console lines instead of JSON
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

// Configure replaces the process-wide logger
func Configure(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(levels[ParseLevel(string(cfg.Level))])

	base = zerolog.New(out).With().Timestamp().Logger()
	log.Logger = base
}

// Get returns the process-wide logger
func Get() zerolog.Logger {
	return base
}

// Component returns a child logger tagged with name, e.g. "services"
func Component(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event { return base.Debug() }

func Info() *zerolog.Event { return base.Info() }

func Warn() *zerolog.Event { return base.Warn() }

func Error() *zerolog.Event { return base.Error() }

// Fatal exits the process once the event is sent
func Fatal() *zerolog.Event { return base.Fatal() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
