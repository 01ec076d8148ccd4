// Package logger is the process-wide structured logger.
//
// Call sites pass a message followed by alternating key/value pairs:
//
//	logger.Info("Server starting", "address", addr)
//	logger.Error("Failed to create behavior log", err)
//
// A bare error is attached under the "error" field, any other unpaired value
// under "detail".
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Init configures the global logger. Development environments get a console
// writer; everything else logs JSON.
func Init(environment, level string) {
	InitWithWriter(environment, level, os.Stderr)
}

func InitWithWriter(environment, level string, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(level))

	out := w
	if strings.EqualFold(environment, "development") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	log = zerolog.New(out).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		if lvl, err := zerolog.ParseLevel(level); err == nil {
			return lvl
		}
		return zerolog.InfoLevel
	}
}

func Debug(msg string, args ...any) {
	emit(current().Debug(), msg, args)
}

func Info(msg string, args ...any) {
	emit(current().Info(), msg, args)
}

func Warn(msg string, args ...any) {
	emit(current().Warn(), msg, args)
}

func Error(msg string, args ...any) {
	emit(current().Error(), msg, args)
}

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) {
	emit(current().Fatal(), msg, args)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func emit(evt *zerolog.Event, msg string, args []any) {
	if evt == nil {
		return
	}

	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			evt = evt.Err(v)
		case string:
			if i+1 < len(args) {
				evt = evt.Interface(v, args[i+1])
				i++
				continue
			}
			evt = evt.Str("detail", v)
		default:
			evt = evt.Str("detail", fmt.Sprint(v))
		}
	}

	evt.Msg(msg)
}
