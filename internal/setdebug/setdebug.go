// Package setdebug holds the process-wide debug configuration, read once
// from the PRIMSET_DEBUG environment variable.
package setdebug

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/rogpeppe/primset/internal/envflag"
)

// EnvVar names the environment variable holding the debug flags.
const EnvVar = "PRIMSET_DEBUG"

// Config holds the known debug flags.
type Config struct {
	// CheckInvariants verifies the structural invariants of a set after
	// every mutation and panics when one does not hold.
	CheckInvariants bool

	// LogResize logs each table rehash and bitmap regrowth.
	LogResize bool
}

var (
	initOnce sync.Once
	flags    Config
	logger   *slog.Logger
)

func initFlags() {
	initOnce.Do(func() {
		err := envflag.Init(&flags, EnvVar)
		var w io.Writer = io.Discard
		if flags.LogResize || err != nil {
			w = os.Stderr
		}
		logger = slog.New(slog.NewTextHandler(w, nil)).With("pkg", "primset")
		if err != nil {
			logger.Warn("ignoring debug flags", "err", err)
		}
	})
}

// Flags returns the debug flags.
func Flags() Config {
	initFlags()
	return flags
}

// Logger returns the debug logger. It discards everything
// unless LogResize is set.
func Logger() *slog.Logger {
	initFlags()
	return logger
}

// Set replaces the flags for the duration of a test, returning
// a function that restores the previous values.
func Set(c Config) (restore func()) {
	initFlags()
	old := flags
	flags = c
	return func() {
		flags = old
	}
}
