// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Options configures New.
type Options struct {
	Level string
	// Format is "console" or "json".
	Format string
	Writer io.Writer
	// NoColor forces plain console output.
	NoColor bool
}

var (
	mu     sync.RWMutex
	global = zerolog.Nop()
)

// New builds a logger tagged with a fresh run_id.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	if opts.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    opts.NoColor || !isTerminal(w),
			TimeFormat: time.Kitchen,
		}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}

// Init installs logger as the process logger returned by Component.
func Init(logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = logger
}

// Component returns the process logger tagged with a component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global.With().Str("component", name).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
