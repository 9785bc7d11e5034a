// Package logging sets up the zerolog logger. The picker owns the terminal,
// so logs only ever go to a file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing JSON lines to path at the given level. An
// empty path discards everything. The returned Closer releases the file.
func New(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
	}
	return NewWriter(f, level), f, nil
}

// NewWriter returns a logger writing to w.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("component", "tvpick").Logger()
}
