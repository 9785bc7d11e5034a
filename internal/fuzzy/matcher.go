package fuzzy

import (
	"cmp"
	"context"
	"slices"

	"github.com/junegunn/fzf/src/util"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of goroutines used to score candidates.
const DefaultWorkers = 2

// chunkSize is the smallest slice of candidates worth a goroutine.
const chunkSize = 1024

// Match is a candidate that satisfied the current query.
type Match struct {
	Text      string
	Index     int   // position among the candidates, in insertion order
	Score     int   // higher is better
	Positions []int // matched rune offsets, ascending
}

// Matcher holds a candidate list and the ranked matches for the last query.
// It is not safe for concurrent use.
type Matcher struct {
	items   []string
	workers int
	query   Query
	matches []Match
	stale   bool
}

// NewMatcher returns an empty Matcher scoring with the given number of
// workers. Values below 1 mean DefaultWorkers.
func NewMatcher(workers int) *Matcher {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Matcher{workers: workers, stale: true}
}

// Push adds a candidate. It is matched on the next Find.
func (m *Matcher) Push(text string) {
	m.items = append(m.items, text)
	m.stale = true
}

// Total returns the number of candidates.
func (m *Matcher) Total() int { return len(m.items) }

// Matched returns the number of candidates matching the last query.
func (m *Matcher) Matched() int { return len(m.matches) }

// Query returns the last query passed to Find.
func (m *Matcher) Query() Query { return m.query }

// Find ranks all candidates against pattern: best score first, ties in
// insertion order. Finding the same pattern again without new candidates
// is free.
func (m *Matcher) Find(ctx context.Context, pattern string) error {
	if !m.stale && pattern == m.query.String() {
		return nil
	}
	q := Parse(pattern)
	if q.Empty() {
		m.query = q
		m.matches = m.matchAll()
		m.stale = false
		return nil
	}

	shards := m.shards()
	results := make([][]Match, len(shards))
	g, ctx := errgroup.WithContext(ctx)
	for i, shard := range shards {
		g.Go(func() error {
			slab := util.MakeSlab(100*1024, 2048)
			var out []Match
			for j := shard[0]; j < shard[1]; j++ {
				if j%chunkSize == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				score, pos, ok := q.match(m.items[j], slab)
				if ok {
					out = append(out, Match{Text: m.items[j], Index: j, Score: score, Positions: pos})
				}
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	matches := slices.Concat(results...)
	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	m.query = q
	m.matches = matches
	m.stale = false
	return nil
}

func (m *Matcher) matchAll() []Match {
	out := make([]Match, len(m.items))
	for i, text := range m.items {
		out[i] = Match{Text: text, Index: i}
	}
	return out
}

// shards splits the candidates into at most m.workers contiguous ranges.
func (m *Matcher) shards() [][2]int {
	n := len(m.items)
	workers := min(m.workers, max(1, (n+chunkSize-1)/chunkSize))
	size := (n + workers - 1) / workers
	var out [][2]int
	for start := 0; start < n; start += size {
		out = append(out, [2]int{start, min(start+size, n)})
	}
	return out
}

// Result returns the i-th ranked match.
func (m *Matcher) Result(i int) (Match, bool) {
	if i < 0 || i >= len(m.matches) {
		return Match{}, false
	}
	return m.matches[i], true
}

// Results returns up to n ranked matches starting at offset.
func (m *Matcher) Results(n, offset int) []Match {
	if offset < 0 || offset >= len(m.matches) || n <= 0 {
		return nil
	}
	return m.matches[offset:min(offset+n, len(m.matches))]
}
