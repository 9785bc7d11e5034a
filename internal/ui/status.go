package ui

import "fmt"

// StatusBar generates the status line text below the prompt.
type StatusBar struct {
	StatusMessage string // Temporary message (e.g. a matcher error).
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// FormatLeft returns the left-aligned portion of the status line. A
// suggestion is only shown when the query matched nothing.
func (s *StatusBar) FormatLeft(matched int, query, suggestion string) string {
	if s.StatusMessage != "" {
		return " " + s.StatusMessage
	}
	if matched == 0 && query != "" && suggestion != "" {
		return fmt.Sprintf(" no matches, did you mean %q?", suggestion)
	}
	return ""
}

// FormatRight returns the right-aligned match counter.
func (s *StatusBar) FormatRight(matched, total int) string {
	return fmt.Sprintf("%d/%d ", matched, total)
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.StatusMessage = msg
}

// ClearMessage clears the temporary status message.
func (s *StatusBar) ClearMessage() {
	s.StatusMessage = ""
}
