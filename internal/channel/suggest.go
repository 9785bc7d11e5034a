package channel

import (
	"strings"
	"unicode"

	"github.com/sajari/fuzzy"
)

// Suggester proposes corrections for misspelt queries using the words that
// appear in the candidates.
type Suggester struct {
	model *fuzzy.Model
	words int
}

// NewSuggester trains a model on the words of lines.
func NewSuggester(lines []string) *Suggester {
	model := fuzzy.NewModel()

	// Depth 2 keeps training fast on large inputs.
	model.SetDepth(2)
	// A word seen once in the candidates is already known.
	model.SetThreshold(1)

	s := &Suggester{model: model}
	seen := make(map[string]struct{})
	for _, line := range lines {
		for _, w := range extractWords(line) {
			w = strings.ToLower(w)
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			model.TrainWord(w)
			s.words++
		}
	}
	return s
}

// Words returns the size of the vocabulary.
func (s *Suggester) Words() int { return s.words }

// Suggest rewrites each term of pattern that is not in the vocabulary with
// its closest known word, keeping query operators in place. It reports
// false when nothing was rewritten.
func (s *Suggester) Suggest(pattern string) (string, bool) {
	if s == nil || s.words == 0 {
		return "", false
	}
	fields := strings.Fields(pattern)
	changed := false
	for i, f := range fields {
		prefix, word, suffix := splitOperators(f)
		lower := strings.ToLower(word)
		// Words of 1-2 letters give poor suggestions.
		if len([]rune(lower)) <= 2 || strings.IndexFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			continue
		}
		c := s.model.SpellCheck(lower)
		if c == "" || c == lower {
			continue
		}
		fields[i] = prefix + c + suffix
		changed = true
	}
	if !changed {
		return "", false
	}
	return strings.Join(fields, " "), true
}

// splitOperators separates the query operators around a term.
func splitOperators(tok string) (prefix, word, suffix string) {
	word = strings.TrimLeft(tok, "!'^")
	prefix = tok[:len(tok)-len(word)]
	if strings.HasSuffix(word, "$") {
		word, suffix = word[:len(word)-1], "$"
	}
	return prefix, word, suffix
}

// extractWords splits a line into runs of letters and inner apostrophes.
func extractWords(line string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.TrimRight(cur.String(), "'"))
			cur.Reset()
		}
	}
	for _, r := range line {
		if unicode.IsLetter(r) || (r == '\'' && cur.Len() > 0) {
			cur.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return words
}
