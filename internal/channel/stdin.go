package channel

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Stdin is a Channel over lines read from a stream, typically os.Stdin.
type Stdin struct {
	source
}

// NewStdin reads every line of r. Blank lines are dropped and the remaining
// lines become candidates in reverse order, so the last line read is the
// first candidate.
func NewStdin(r io.Reader, opts ...Option) (*Stdin, error) {
	o := newOptions(opts)

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading candidates: %w", err)
	}

	slices.Reverse(lines)
	src, err := newSource(lines, o)
	if err != nil {
		return nil, err
	}
	o.log.Debug().Int("lines", len(lines)).Int("workers", o.workers).Msg("candidates loaded")
	return &Stdin{source: src}, nil
}
