package picker

import "unicode"

// Word is a run of word characters in the query, as rune offsets.
type Word struct {
	Start int
	End   int
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Words returns the words of text in order.
func Words(text []rune) []Word {
	var words []Word
	inWord := false
	var start int

	for i, r := range text {
		if isWordChar(r) {
			if !inWord {
				start = i
				inWord = true
			}
		} else if inWord {
			words = append(words, Word{Start: start, End: i})
			inWord = false
		}
	}
	if inWord {
		words = append(words, Word{Start: start, End: len(text)})
	}
	return words
}

// WordLeft moves the cursor to the start of the word before it.
func (in *Input) WordLeft() {
	pos := 0
	for _, w := range Words(in.text) {
		if w.Start >= in.cursor {
			break
		}
		pos = w.Start
	}
	in.cursor = pos
}

// WordRight moves the cursor to the end of the word after it.
func (in *Input) WordRight() {
	for _, w := range Words(in.text) {
		if w.End > in.cursor {
			in.cursor = w.End
			return
		}
	}
	in.cursor = len(in.text)
}
