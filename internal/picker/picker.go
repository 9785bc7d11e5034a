package picker

// listState holds an optional row index.
type listState struct {
	index int
	ok    bool
}

func (s *listState) selected() (int, bool) { return s.index, s.ok }

func (s *listState) selectIndex(i int) {
	s.index = i
	s.ok = true
}

func (s *listState) clear() { *s = listState{} }

// or returns the index, or def when nothing is selected.
func (s *listState) or(def int) int {
	if !s.ok {
		return def
	}
	return s.index
}

// Picker tracks the selected candidate and the window of rows on screen.
//
// The selection is kept as three coordinates: the absolute index into the
// candidate list, the index relative to the first visible row, and the
// absolute index of the first visible row (the view offset). After every
// navigation call on a non-empty list:
//
//	selected == viewOffset + relativeSelected
//	relativeSelected <= max(height-3, 0)
//	selected < total
//
// height is the full height of the list widget. Two rows are taken by its
// borders, so height-2 candidate rows are visible and the last visible
// relative index is height-3.
type Picker struct {
	state      listState
	relative   listState
	viewOffset int
	inverted   bool
	input      Input
}

// Option configures a Picker at construction.
type Option func(*Picker)

// WithInverted flips the orientation so that SelectNext moves toward the
// end of the list.
func WithInverted() Option {
	return func(p *Picker) { p.inverted = !p.inverted }
}

// New returns a Picker with nothing selected and the view at the top.
func New(opts ...Option) *Picker {
	p := &Picker{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Inverted returns a copy of p with the orientation flipped. The
// orientation of an existing Picker never changes.
func (p *Picker) Inverted() *Picker {
	c := *p
	c.inverted = !c.inverted
	c.input = *NewInput(p.input.Value())
	c.input.cursor = p.input.cursor
	return &c
}

// IsInverted reports the orientation the Picker was built with.
func (p *Picker) IsInverted() bool { return p.inverted }

// Input returns the query buffer of this picker session.
func (p *Picker) Input() *Input { return &p.input }

// Selected returns the absolute selected index.
func (p *Picker) Selected() (int, bool) { return p.state.selected() }

// Select sets the absolute selected index. No bounds are checked.
func (p *Picker) Select(i int) { p.state.selectIndex(i) }

// RelativeSelected returns the selected index relative to the view offset.
func (p *Picker) RelativeSelected() (int, bool) { return p.relative.selected() }

// RelativeSelect sets the relative selected index. No bounds are checked.
func (p *Picker) RelativeSelect(i int) { p.relative.selectIndex(i) }

// ClearSelection removes both the absolute and relative selection.
func (p *Picker) ClearSelection() {
	p.state.clear()
	p.relative.clear()
}

// ViewOffset returns the absolute index of the first visible row.
func (p *Picker) ViewOffset() int { return p.viewOffset }

// ResetSelection moves the selection and the view back to the first item.
func (p *Picker) ResetSelection() {
	p.state.selectIndex(0)
	p.relative.selectIndex(0)
	p.viewOffset = 0
}

// ResetInput clears the query buffer.
func (p *Picker) ResetInput() {
	p.input.Reset()
}

// SelectNext moves to the logically next item. Does nothing when total is 0.
func (p *Picker) SelectNext(total, height int) {
	if total <= 0 {
		return
	}
	if p.inverted {
		p.stepForward(total, height)
	} else {
		p.stepBack(total, height)
	}
}

// SelectPrev moves to the logically previous item. Does nothing when total
// is 0.
func (p *Picker) SelectPrev(total, height int) {
	if total <= 0 {
		return
	}
	if p.inverted {
		p.stepBack(total, height)
	} else {
		p.stepForward(total, height)
	}
}

// stepBack moves the absolute index toward 0, wrapping to the last item.
func (p *Picker) stepBack(total, height int) {
	selected := p.state.or(0)
	relative := p.relative.or(0)
	if selected > 0 {
		p.state.selectIndex(selected - 1)
		p.relative.selectIndex(satSub(relative, 1))
		if relative == 0 {
			p.viewOffset = satSub(p.viewOffset, 1)
		}
		return
	}

	last := satSub(total, 1)
	relative = min(satSub(height, 3), last)
	p.state.selectIndex(last)
	p.relative.selectIndex(relative)
	p.viewOffset = last - relative
}

// stepForward moves the absolute index toward the end, wrapping to 0.
func (p *Picker) stepForward(total, height int) {
	next := (p.state.or(0) + 1) % total
	p.state.selectIndex(next)
	if next == 0 {
		p.viewOffset = 0
		p.relative.selectIndex(0)
		return
	}

	lastRow := satSub(height, 3)
	relative := p.relative.or(0)
	if relative == lastRow {
		p.viewOffset++
		p.relative.selectIndex(min(next, lastRow))
	} else {
		p.relative.selectIndex(min(relative+1, next))
	}
}

// Step applies n logical moves: positive n calls SelectNext, negative n
// calls SelectPrev.
func (p *Picker) Step(n, total, height int) {
	for ; n > 0; n-- {
		p.SelectNext(total, height)
	}
	for ; n < 0; n++ {
		p.SelectPrev(total, height)
	}
}

// Window returns the half-open range of absolute indices on screen.
func (p *Picker) Window(total, height int) (start, end int) {
	start = min(p.viewOffset, max(total, 0))
	end = min(start+satSub(height, 2), max(total, 0))
	return start, end
}

// Clamp restores the coordinate invariants after total or height changed
// without a reset. An empty list clears the selection.
func (p *Picker) Clamp(total, height int) {
	if total <= 0 {
		p.ClearSelection()
		p.viewOffset = 0
		return
	}
	selected := min(p.state.or(0), total-1)
	relative := min(p.relative.or(0), satSub(height, 3), selected)
	p.state.selectIndex(selected)
	p.relative.selectIndex(relative)
	p.viewOffset = selected - relative
}

// SelectRow selects the candidate shown on visible row row. It reports
// false when the row is outside the window or past the end of the list.
func (p *Picker) SelectRow(row, total, height int) bool {
	if row < 0 || row > satSub(height, 3) {
		return false
	}
	i := p.viewOffset + row
	if i >= total {
		return false
	}
	p.state.selectIndex(i)
	p.relative.selectIndex(row)
	return true
}

// satSub returns a-b, or 0 when b > a.
func satSub(a, b int) int {
	if b > a {
		return 0
	}
	return a - b
}
