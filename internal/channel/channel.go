// Package channel provides sources of candidates for the picker.
package channel

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/JackWReid/tvpick/internal/fuzzy"
)

// Range is a half-open range of rune offsets in an entry name.
type Range struct {
	Start, End int
}

// Entry is one ranked candidate ready to be drawn.
type Entry struct {
	Name        string
	Index       int // position among all candidates
	MatchRanges []Range
}

// Channel is a filtered, ranked list of candidates.
type Channel interface {
	// Find sets the query. Results reflect it once Find returns.
	Find(ctx context.Context, pattern string) error
	// Results returns up to n entries starting at offset.
	Results(n, offset int) []Entry
	// Get returns the entry at a ranked index.
	Get(index int) (Entry, bool)
	// ResultCount returns the number of entries matching the query.
	ResultCount() int
	// TotalCount returns the number of candidates.
	TotalCount() int
	// Suggest returns a correction for a query that matched nothing.
	Suggest(pattern string) (string, bool)
}

// Option configures a channel.
type Option func(*options)

type options struct {
	workers int
	log     zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{workers: fuzzy.DefaultWorkers, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of scoring goroutines.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// source is the matcher-backed core shared by every channel. Candidates are
// pushed once at construction.
type source struct {
	matcher   *fuzzy.Matcher
	suggester *Suggester
	log       zerolog.Logger
}

func newSource(candidates []string, o options) (source, error) {
	m := fuzzy.NewMatcher(o.workers)
	for _, c := range candidates {
		m.Push(c)
	}
	s := source{
		matcher:   m,
		suggester: NewSuggester(candidates),
		log:       o.log,
	}
	if err := m.Find(context.Background(), ""); err != nil {
		return source{}, err
	}
	return s, nil
}

func (s *source) Find(ctx context.Context, pattern string) error {
	start := time.Now()
	if err := s.matcher.Find(ctx, pattern); err != nil {
		return fmt.Errorf("matching %q: %w", pattern, err)
	}
	s.log.Debug().
		Str("query", pattern).
		Int("matched", s.matcher.Matched()).
		Dur("took", time.Since(start)).
		Msg("find")
	return nil
}

func (s *source) Results(n, offset int) []Entry {
	matches := s.matcher.Results(n, offset)
	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = entryFromMatch(m)
	}
	return out
}

func (s *source) Get(index int) (Entry, bool) {
	m, ok := s.matcher.Result(index)
	if !ok {
		return Entry{}, false
	}
	return entryFromMatch(m), true
}

func (s *source) ResultCount() int { return s.matcher.Matched() }

func (s *source) TotalCount() int { return s.matcher.Total() }

func (s *source) Suggest(pattern string) (string, bool) {
	return s.suggester.Suggest(pattern)
}

func entryFromMatch(m fuzzy.Match) Entry {
	return Entry{
		Name:        m.Text,
		Index:       m.Index,
		MatchRanges: ranges(m.Positions),
	}
}

// ranges merges sorted positions into contiguous ranges.
func ranges(positions []int) []Range {
	var out []Range
	for _, p := range positions {
		if n := len(out); n > 0 && out[n-1].End == p {
			out[n-1].End++
			continue
		}
		out = append(out, Range{Start: p, End: p + 1})
	}
	return out
}
