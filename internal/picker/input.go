package picker

import "unicode"

// Input is the query being typed into the picker.
type Input struct {
	text   []rune
	cursor int // rune index, 0 <= cursor <= len(text)
}

// NewInput returns an Input holding s with the cursor at the end.
func NewInput(s string) *Input {
	r := []rune(s)
	return &Input{text: r, cursor: len(r)}
}

// Value returns the current text.
func (in *Input) Value() string { return string(in.text) }

// Cursor returns the cursor position in runes.
func (in *Input) Cursor() int { return in.cursor }

// Len returns the length of the text in runes.
func (in *Input) Len() int { return len(in.text) }

// Insert adds r at the cursor.
func (in *Input) Insert(r rune) {
	in.text = append(in.text, 0)
	copy(in.text[in.cursor+1:], in.text[in.cursor:])
	in.text[in.cursor] = r
	in.cursor++
}

// Backspace deletes the rune before the cursor. Returns false if there was
// nothing to delete.
func (in *Input) Backspace() bool {
	if in.cursor == 0 {
		return false
	}
	in.text = append(in.text[:in.cursor-1], in.text[in.cursor:]...)
	in.cursor--
	return true
}

// Delete deletes the rune under the cursor.
func (in *Input) Delete() bool {
	if in.cursor >= len(in.text) {
		return false
	}
	in.text = append(in.text[:in.cursor], in.text[in.cursor+1:]...)
	return true
}

// DeleteWord deletes back to the start of the previous word, skipping any
// whitespace directly before the cursor first.
func (in *Input) DeleteWord() bool {
	start := in.cursor
	for start > 0 && unicode.IsSpace(in.text[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(in.text[start-1]) {
		start--
	}
	if start == in.cursor {
		return false
	}
	in.text = append(in.text[:start], in.text[in.cursor:]...)
	in.cursor = start
	return true
}

// Clear deletes everything before the cursor.
func (in *Input) Clear() bool {
	if in.cursor == 0 {
		return false
	}
	in.text = append(in.text[:0], in.text[in.cursor:]...)
	in.cursor = 0
	return true
}

// Reset empties the buffer.
func (in *Input) Reset() {
	in.text = nil
	in.cursor = 0
}

func (in *Input) Left() {
	if in.cursor > 0 {
		in.cursor--
	}
}

func (in *Input) Right() {
	if in.cursor < len(in.text) {
		in.cursor++
	}
}

func (in *Input) Home() { in.cursor = 0 }

func (in *Input) End() { in.cursor = len(in.text) }
