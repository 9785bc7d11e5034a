package ui

// MinRows is the smallest picker that still shows one candidate: a results
// box of three rows, the input line and the status line.
const MinRows = 5

// Layout places the picker widgets on screen. Rows are 1-based terminal rows.
//
// In the default orientation the results box sits above the input line and
// candidates are drawn bottom-up, so candidate 0 is next to the prompt. In
// the inverted orientation the input line comes first and candidates run
// top-down beneath it.
type Layout struct {
	Width     int  // Terminal width
	Height    int  // Terminal height
	MaxRows   int  // Configured picker height, 0 for the whole terminal
	Inverted  bool // Input at the top, list drawn top-down
	Rows      int  // Rows used by the picker
	BoxTop    int  // Row of the results box top border
	BoxHeight int  // Results box height including both borders
	InputRow  int
	StatusRow int
}

func NewLayout(termWidth, termHeight, maxRows int, inverted bool) *Layout {
	l := &Layout{
		Width:    termWidth,
		Height:   termHeight,
		MaxRows:  maxRows,
		Inverted: inverted,
	}
	l.recalc()
	return l
}

func (l *Layout) recalc() {
	l.Rows = l.Height
	if l.MaxRows > 0 && l.MaxRows < l.Rows {
		l.Rows = max(l.MaxRows, min(MinRows, l.Height))
	}
	l.BoxHeight = max(l.Rows-2, 0)
	if l.Inverted {
		l.InputRow = 1
		l.StatusRow = 2
		l.BoxTop = 3
	} else {
		l.BoxTop = 1
		l.InputRow = l.BoxHeight + 1
		l.StatusRow = l.BoxHeight + 2
	}
}

// Resize updates the layout for new terminal dimensions.
func (l *Layout) Resize(termWidth, termHeight int) {
	l.Width = termWidth
	l.Height = termHeight
	l.recalc()
}

// ListHeight is the height of the list widget as the picker state machine
// sees it: the results box including its borders.
func (l *Layout) ListHeight() int { return l.BoxHeight }

// ContentRows returns the number of candidate rows inside the box.
func (l *Layout) ContentRows() int { return max(l.BoxHeight-2, 0) }

// ContentWidth returns the width inside the box borders.
func (l *Layout) ContentWidth() int { return max(l.Width-2, 0) }

// ScreenRow returns the terminal row that shows viewport row rel.
func (l *Layout) ScreenRow(rel int) int {
	first := l.BoxTop + 1
	if l.Inverted {
		return first + rel
	}
	return first + l.ContentRows() - 1 - rel
}

// RowAt maps a terminal row to a viewport row. It reports false outside the
// candidate rows.
func (l *Layout) RowAt(screenRow int) (int, bool) {
	idx := screenRow - (l.BoxTop + 1)
	if idx < 0 || idx >= l.ContentRows() {
		return 0, false
	}
	if l.Inverted {
		return idx, true
	}
	return l.ContentRows() - 1 - idx, true
}
