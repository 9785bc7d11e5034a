package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/JackWReid/tvpick/internal/channel"
)

const ellipsis = "…"

// Frame is everything needed to draw one screen.
type Frame struct {
	Layout      *Layout
	Entries     []channel.Entry // Visible window; Entries[0] is at the view offset
	Selected    int             // Viewport row of the selection, -1 for none
	Prompt      string
	Query       string
	Cursor      int // Rune offset of the cursor in Query
	StatusLeft  string
	StatusRight string
}

// Renderer builds a frame buffer and writes it to the terminal in one go.
type Renderer struct {
	buf    strings.Builder
	styles Styles
	border lipgloss.Border
}

func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles, border: lipgloss.RoundedBorder()}
}

// RenderFrame draws the full screen: results box, input line, status line
// and cursor placement.
func (r *Renderer) RenderFrame(f Frame) string {
	r.buf.Reset()
	l := f.Layout

	// Hide cursor during drawing.
	r.buf.WriteString("\x1b[?25l")

	// Clear screen and move to top-left.
	r.buf.WriteString("\x1b[2J\x1b[H")

	if l.BoxHeight >= 2 && l.Width >= 2 {
		r.renderBox(f)
	}

	// Input line.
	r.moveTo(l.InputRow, 1)
	prompt := runewidth.Truncate(f.Prompt, l.Width, "")
	r.buf.WriteString(r.styles.Prompt.Render(prompt))
	query := runewidth.Truncate(f.Query, max(l.Width-runewidth.StringWidth(prompt), 0), "")
	r.buf.WriteString(query)

	r.renderStatusBar(l, f.StatusLeft, f.StatusRight)

	// Position the cursor.
	before := string([]rune(f.Query)[:min(max(f.Cursor, 0), len([]rune(f.Query)))])
	col := 1 + runewidth.StringWidth(prompt) + runewidth.StringWidth(before)
	r.moveTo(l.InputRow, min(col, max(l.Width, 1)))

	// Show cursor.
	r.buf.WriteString("\x1b[?25h")

	return r.buf.String()
}

func (r *Renderer) moveTo(row, col int) {
	r.buf.WriteString(fmt.Sprintf("\x1b[%d;%dH", row, col))
}

func (r *Renderer) renderBox(f Frame) {
	l := f.Layout
	inner := l.ContentWidth()
	b := r.border

	r.moveTo(l.BoxTop, 1)
	r.buf.WriteString(r.styles.Border.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight))

	for i := 0; i < l.ContentRows(); i++ {
		r.moveTo(l.ScreenRow(i), 1)
		r.buf.WriteString(r.styles.Border.Render(b.Left))
		if i < len(f.Entries) {
			r.buf.WriteString(r.renderEntry(f.Entries[i], inner, i == f.Selected))
		} else {
			r.buf.WriteString(strings.Repeat(" ", inner))
		}
		r.buf.WriteString(r.styles.Border.Render(b.Right))
	}

	r.moveTo(l.BoxTop+l.BoxHeight-1, 1)
	r.buf.WriteString(r.styles.Border.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight))
}

// renderEntry draws one candidate padded to exactly width columns: a two
// column gutter, then the name with matched runes highlighted.
func (r *Renderer) renderEntry(e channel.Entry, width int, selected bool) string {
	base, match := r.styles.Plain, r.styles.Match
	gutter := "  "
	if selected {
		base, match = r.styles.Selected, r.styles.SelectedMatch
		gutter = "> "
	}
	if width < len(gutter) {
		return base.Render(strings.Repeat(" ", width))
	}

	var out strings.Builder
	out.WriteString(base.Render(gutter))

	name := sanitize(e.Name)
	keep, cut := fit(name, width-len(gutter))
	used := len(gutter)
	for start := 0; start < keep; {
		matched := inRanges(e.MatchRanges, start)
		end := start + 1
		for end < keep && inRanges(e.MatchRanges, end) == matched {
			end++
		}
		seg := string(name[start:end])
		used += runewidth.StringWidth(seg)
		if matched {
			out.WriteString(match.Render(seg))
		} else {
			out.WriteString(base.Render(seg))
		}
		start = end
	}
	if cut {
		out.WriteString(base.Render(ellipsis))
		used += runewidth.StringWidth(ellipsis)
	}
	if used < width {
		out.WriteString(base.Render(strings.Repeat(" ", width-used)))
	}
	return out.String()
}

func (r *Renderer) renderStatusBar(l *Layout, left, right string) {
	r.moveTo(l.StatusRow, 1)

	totalWidth := l.Width
	left = runewidth.Truncate(left, max(totalWidth-runewidth.StringWidth(right)-1, 0), ellipsis)
	gap := max(totalWidth-runewidth.StringWidth(left)-runewidth.StringWidth(right), 0)

	r.buf.WriteString(r.styles.Status.Render(left + strings.Repeat(" ", gap) + right))
}

// fit returns how many runes of name fit in width columns, and whether the
// name was cut short to leave room for an ellipsis.
func fit(name []rune, width int) (int, bool) {
	if runewidth.StringWidth(string(name)) <= width {
		return len(name), false
	}
	limit := width - runewidth.StringWidth(ellipsis)
	w := 0
	for i, c := range name {
		cw := runewidth.RuneWidth(c)
		if w+cw > limit {
			return i, true
		}
		w += cw
	}
	return len(name), false
}

// sanitize replaces control characters so a candidate cannot move the
// cursor. It keeps one rune per input rune so match offsets stay valid.
func sanitize(s string) []rune {
	rs := []rune(s)
	for i, c := range rs {
		switch {
		case c == '\t':
			rs[i] = ' '
		case c < 32 || c == 127:
			rs[i] = '?'
		}
	}
	return rs
}

func inRanges(rs []channel.Range, i int) bool {
	for _, rg := range rs {
		if i >= rg.Start && i < rg.End {
			return true
		}
	}
	return false
}
