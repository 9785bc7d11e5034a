package picker

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type snapshot struct {
	Selected    int
	HasSelected bool
	Relative    int
	HasRelative bool
	Offset      int
}

func snap(p *Picker) snapshot {
	s, sok := p.Selected()
	r, rok := p.RelativeSelected()
	return snapshot{s, sok, r, rok, p.ViewOffset()}
}

func at(selected, relative, offset int) snapshot {
	return snapshot{selected, true, relative, true, offset}
}

func place(p *Picker, selected, relative, offset int) {
	p.Select(selected)
	p.RelativeSelect(relative)
	p.viewOffset = offset
}

func checkInvariants(t *testing.T, p *Picker, total, height int) {
	t.Helper()
	s, sok := p.Selected()
	r, rok := p.RelativeSelected()
	if !sok || !rok {
		t.Fatalf("total=%d height=%d: selection missing: %+v", total, height, snap(p))
	}
	if s != p.ViewOffset()+r {
		t.Fatalf("total=%d height=%d: selected %d != offset %d + relative %d", total, height, s, p.ViewOffset(), r)
	}
	if r < 0 || (height > 0 && r >= height) || r > max(height-3, 0) {
		t.Fatalf("total=%d height=%d: relative %d outside window", total, height, r)
	}
	if s < 0 || s >= total {
		t.Fatalf("total=%d height=%d: selected %d outside list", total, height, s)
	}
}

func TestPickerNew(t *testing.T) {
	p := New()
	if diff := cmp.Diff(snapshot{}, snap(p)); diff != "" {
		t.Errorf("new picker state mismatch (-want +got):\n%s", diff)
	}
	if p.IsInverted() {
		t.Error("new picker should not be inverted")
	}
	if p.Input().Value() != "" {
		t.Errorf("input = %q, want empty", p.Input().Value())
	}
}

func TestPickerInverted(t *testing.T) {
	if !New().Inverted().IsInverted() {
		t.Error("Inverted() should flip orientation")
	}
	if New().Inverted().Inverted().IsInverted() {
		t.Error("Inverted() twice should restore orientation")
	}
	if !New(WithInverted()).IsInverted() {
		t.Error("WithInverted should build an inverted picker")
	}

	p := New()
	p.Input().Insert('x')
	q := p.Inverted()
	q.Input().Insert('y')
	if p.IsInverted() {
		t.Error("Inverted() must not change the receiver")
	}
	if p.Input().Value() != "x" {
		t.Errorf("receiver input = %q, want %q", p.Input().Value(), "x")
	}
}

func TestPickerResetSelection(t *testing.T) {
	p := New()
	place(p, 7, 2, 5)
	p.ResetSelection()
	if diff := cmp.Diff(at(0, 0, 0), snap(p)); diff != "" {
		t.Errorf("after reset (-want +got):\n%s", diff)
	}
	p.ResetSelection()
	if diff := cmp.Diff(at(0, 0, 0), snap(p)); diff != "" {
		t.Errorf("after second reset (-want +got):\n%s", diff)
	}
}

func TestPickerResetInput(t *testing.T) {
	p := New()
	p.input = *NewInput("test")
	if p.Input().Value() != "test" {
		t.Fatalf("input = %q, want %q", p.Input().Value(), "test")
	}
	p.ResetInput()
	if p.Input().Value() != "" {
		t.Errorf("input = %q after reset, want empty", p.Input().Value())
	}
}

func TestPickerSelect(t *testing.T) {
	p := New()
	if _, ok := p.Selected(); ok {
		t.Error("new picker should have no selection")
	}
	p.Select(1)
	if s, ok := p.Selected(); !ok || s != 1 {
		t.Errorf("Selected() = %d, %v; want 1, true", s, ok)
	}
	p.ClearSelection()
	if _, ok := p.Selected(); ok {
		t.Error("selection should be cleared")
	}
}

func TestPickerRelativeSelect(t *testing.T) {
	p := New()
	if _, ok := p.RelativeSelected(); ok {
		t.Error("new picker should have no relative selection")
	}
	p.RelativeSelect(1)
	if r, ok := p.RelativeSelected(); !ok || r != 1 {
		t.Errorf("RelativeSelected() = %d, %v; want 1, true", r, ok)
	}
}

func TestPickerSelectNext(t *testing.T) {
	p := New()
	p.Select(1)
	p.RelativeSelect(1)
	p.SelectNext(5, 3)
	if diff := cmp.Diff(at(0, 0, 0), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSelectNextWrapsToEnd(t *testing.T) {
	p := New()
	p.ResetSelection()
	p.SelectNext(5, 5)
	// Three content rows: items 2, 3 and 4 are visible with 4 on the last row.
	if diff := cmp.Diff(at(4, 2, 2), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSelectNextWrapsShortList(t *testing.T) {
	p := New()
	p.ResetSelection()
	p.SelectNext(2, 10)
	if diff := cmp.Diff(at(1, 1, 0), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSelectPrevWrapsToStart(t *testing.T) {
	p := New()
	place(p, 4, 2, 2)
	p.SelectPrev(5, 5)
	if diff := cmp.Diff(at(0, 0, 0), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSelectPrevScrollsAtLastRow(t *testing.T) {
	p := New()
	place(p, 2, 2, 0)
	p.SelectPrev(10, 5)
	if diff := cmp.Diff(at(3, 2, 1), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSelectNextScrollsAtFirstRow(t *testing.T) {
	p := New()
	place(p, 5, 0, 5)
	p.SelectNext(10, 5)
	if diff := cmp.Diff(at(4, 0, 4), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSelectNextThreeTimesFromTop(t *testing.T) {
	p := New()
	p.ResetSelection()
	want := []snapshot{at(9, 2, 7), at(8, 1, 7), at(7, 0, 7)}
	for i, w := range want {
		p.SelectNext(10, 5)
		if diff := cmp.Diff(w, snap(p)); diff != "" {
			t.Errorf("step %d (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestSelectFromEmptyState(t *testing.T) {
	p := New()
	p.SelectPrev(3, 5)
	if diff := cmp.Diff(at(1, 1, 0), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNavigationOnEmptyListIsNoop(t *testing.T) {
	for _, inverted := range []bool{false, true} {
		p := New()
		if inverted {
			p = p.Inverted()
		}
		p.SelectNext(0, 10)
		p.SelectPrev(0, 10)
		if diff := cmp.Diff(snapshot{}, snap(p)); diff != "" {
			t.Errorf("inverted=%v (-want +got):\n%s", inverted, diff)
		}
	}
}

func TestSmallHeightsDegrade(t *testing.T) {
	for height := 0; height < 3; height++ {
		p := New()
		p.ResetSelection()
		for i := 0; i < 12; i++ {
			p.SelectPrev(5, height)
			s, _ := p.Selected()
			r, _ := p.RelativeSelected()
			if r != 0 || p.ViewOffset() != s || s >= 5 {
				t.Fatalf("height=%d step %d: %+v", height, i, snap(p))
			}
		}
		for i := 0; i < 12; i++ {
			p.SelectNext(5, height)
			s, _ := p.Selected()
			r, _ := p.RelativeSelected()
			if r != 0 || p.ViewOffset() != s || s >= 5 {
				t.Fatalf("height=%d step %d: %+v", height, i, snap(p))
			}
		}
	}
}

func TestInvariantsHold(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for total := 1; total <= 12; total++ {
		for height := 3; height <= 9; height++ {
			for _, inverted := range []bool{false, true} {
				p := New()
				if inverted {
					p = p.Inverted()
				}
				p.ResetSelection()
				for i := 0; i < 200; i++ {
					if rng.IntN(2) == 0 {
						p.SelectNext(total, height)
					} else {
						p.SelectPrev(total, height)
					}
					checkInvariants(t, p, total, height)
				}
			}
		}
	}
}

func TestNextThenPrevRestoresSelection(t *testing.T) {
	for total := 1; total <= 8; total++ {
		for height := 3; height <= 7; height++ {
			walker := New()
			walker.ResetSelection()
			for i := 0; i < 2*total; i++ {
				before := *walker
				s, _ := before.Selected()

				p := before
				p.SelectNext(total, height)
				p.SelectPrev(total, height)
				if got, _ := p.Selected(); s != 0 && got != s {
					t.Errorf("total=%d height=%d: next,prev from %d gave %d", total, height, s, got)
				}

				q := before
				q.SelectPrev(total, height)
				q.SelectNext(total, height)
				if got, _ := q.Selected(); s != total-1 && got != s {
					t.Errorf("total=%d height=%d: prev,next from %d gave %d", total, height, s, got)
				}

				walker.SelectPrev(total, height)
			}
		}
	}
}

func TestInvertedMirrorsDirection(t *testing.T) {
	for total := 1; total <= 8; total++ {
		for height := 1; height <= 7; height++ {
			for sel := 0; sel < total; sel++ {
				rel := min(sel, max(height-3, 0))
				off := sel - rel

				normal, inverted := New(), New(WithInverted())
				place(normal, sel, rel, off)
				place(inverted, sel, rel, off)
				normal.SelectPrev(total, height)
				inverted.SelectNext(total, height)
				if diff := cmp.Diff(snap(normal), snap(inverted)); diff != "" {
					t.Errorf("total=%d height=%d sel=%d: inverted next != prev (-prev +next):\n%s", total, height, sel, diff)
				}

				place(normal, sel, rel, off)
				place(inverted, sel, rel, off)
				normal.SelectNext(total, height)
				inverted.SelectPrev(total, height)
				if diff := cmp.Diff(snap(normal), snap(inverted)); diff != "" {
					t.Errorf("total=%d height=%d sel=%d: inverted prev != next (-next +prev):\n%s", total, height, sel, diff)
				}
			}
		}
	}
}

func TestStep(t *testing.T) {
	p := New()
	p.ResetSelection()
	p.Step(-4, 10, 5)
	if diff := cmp.Diff(at(4, 2, 2), snap(p)); diff != "" {
		t.Errorf("Step(-4) (-want +got):\n%s", diff)
	}
	p.Step(2, 10, 5)
	if diff := cmp.Diff(at(2, 0, 2), snap(p)); diff != "" {
		t.Errorf("Step(2) (-want +got):\n%s", diff)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		offset, total, height int
		start, end            int
	}{
		{0, 10, 5, 0, 3},
		{7, 10, 5, 7, 10},
		{8, 10, 5, 8, 10},
		{0, 2, 10, 0, 2},
		{0, 0, 10, 0, 0},
		{3, 10, 1, 3, 3},
		{12, 10, 5, 10, 10},
	}
	for _, tc := range tests {
		p := New()
		p.viewOffset = tc.offset
		start, end := p.Window(tc.total, tc.height)
		if start != tc.start || end != tc.end {
			t.Errorf("Window(offset=%d, %d, %d) = [%d,%d), want [%d,%d)",
				tc.offset, tc.total, tc.height, start, end, tc.start, tc.end)
		}
	}
}

func TestClamp(t *testing.T) {
	p := New()
	place(p, 9, 2, 7)
	p.Clamp(4, 5)
	if diff := cmp.Diff(at(3, 2, 1), snap(p)); diff != "" {
		t.Errorf("shrink (-want +got):\n%s", diff)
	}
	checkInvariants(t, p, 4, 5)

	p.Clamp(4, 3)
	if diff := cmp.Diff(at(3, 0, 3), snap(p)); diff != "" {
		t.Errorf("short viewport (-want +got):\n%s", diff)
	}

	p.Clamp(0, 5)
	if diff := cmp.Diff(snapshot{}, snap(p)); diff != "" {
		t.Errorf("empty (-want +got):\n%s", diff)
	}
}

func TestSelectRow(t *testing.T) {
	p := New()
	place(p, 7, 0, 7)
	if !p.SelectRow(2, 10, 5) {
		t.Fatal("SelectRow(2) should succeed")
	}
	if diff := cmp.Diff(at(9, 2, 7), snap(p)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if p.SelectRow(3, 10, 5) {
		t.Error("row past the window should be rejected")
	}
	p.viewOffset = 8
	if p.SelectRow(2, 10, 5) {
		t.Error("row past the end of the list should be rejected")
	}
	if p.SelectRow(-1, 10, 5) {
		t.Error("negative row should be rejected")
	}
}
