package fuzzy

import (
	"slices"
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Query syntax, as in fzf's extended search mode:
//
//	foo     fuzzy match
//	'foo    exact substring
//	^foo    prefix
//	foo$    suffix
//	!foo    negate any of the above
//	a b     both terms must match
//	a | b   either group may match

func init() {
	algo.Init("default")
}

// Query is a parsed search pattern. Terms with upper case letters match case
// sensitively.
type Query struct {
	raw    string
	groups [][]term
}

type termKind int

const (
	termFuzzy termKind = iota
	termExact
	termPrefix
	termSuffix
)

type term struct {
	kind          termKind
	runes         []rune
	negated       bool
	caseSensitive bool
}

type algoFunc func(caseSensitive, normalize, forward bool, input *util.Chars, pattern []rune, withPos bool, slab *util.Slab) (algo.Result, *[]int)

func (k termKind) fn() algoFunc {
	switch k {
	case termExact:
		return algo.ExactMatchNaive
	case termPrefix:
		return algo.PrefixMatch
	case termSuffix:
		return algo.SuffixMatch
	default:
		return algo.FuzzyMatchV2
	}
}

// Parse parses raw into a Query. Blank input gives an empty query that
// matches everything.
func Parse(raw string) Query {
	q := Query{raw: raw}
	for _, part := range strings.Split(strings.TrimSpace(raw), " | ") {
		var g []term
		for _, tok := range strings.Fields(part) {
			if t, ok := parseTerm(tok); ok {
				g = append(g, t)
			}
		}
		if len(g) > 0 {
			q.groups = append(q.groups, g)
		}
	}
	return q
}

func parseTerm(tok string) (term, bool) {
	t := term{kind: termFuzzy}
	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}
	switch {
	case len(tok) > 1 && tok[0] == '\'':
		t.kind = termExact
		tok = tok[1:]
	case len(tok) > 1 && tok[0] == '^':
		t.kind = termPrefix
		tok = tok[1:]
	case len(tok) > 1 && strings.HasSuffix(tok, "$"):
		t.kind = termSuffix
		tok = tok[:len(tok)-1]
	}
	if tok == "" {
		return term{}, false
	}
	t.caseSensitive = strings.IndexFunc(tok, unicode.IsUpper) >= 0
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}
	t.runes = []rune(tok)
	return t, true
}

// String returns the pattern the query was parsed from.
func (q Query) String() string { return q.raw }

// Empty reports whether the query has no terms.
func (q Query) Empty() bool { return len(q.groups) == 0 }

// match scores text. The best scoring group wins; positions are the sorted
// rune offsets of the characters its positive terms matched.
func (q Query) match(text string, slab *util.Slab) (score int, positions []int, ok bool) {
	if q.Empty() {
		return 0, nil, true
	}
	chars := util.ToChars([]byte(text))
	best := -1
	for _, g := range q.groups {
		s, pos, matched := matchGroup(g, &chars, slab)
		if matched && s > best {
			best, positions, ok = s, pos, true
		}
	}
	if !ok {
		return 0, nil, false
	}
	slices.Sort(positions)
	return best, slices.Compact(positions), true
}

func matchGroup(g []term, chars *util.Chars, slab *util.Slab) (int, []int, bool) {
	total := 0
	var positions []int
	for _, t := range g {
		res, pos := t.kind.fn()(t.caseSensitive, false, true, chars, t.runes, !t.negated, slab)
		matched := res.Start >= 0
		if t.negated {
			if matched {
				return 0, nil, false
			}
			continue
		}
		if !matched {
			return 0, nil, false
		}
		total += res.Score
		if pos != nil {
			positions = append(positions, *pos...)
		} else {
			for i := res.Start; i < res.End; i++ {
				positions = append(positions, i)
			}
		}
	}
	return total, positions, true
}
