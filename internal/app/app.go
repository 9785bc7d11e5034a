package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/JackWReid/tvpick/internal/channel"
	"github.com/JackWReid/tvpick/internal/picker"
	"github.com/JackWReid/tvpick/internal/terminal"
	"github.com/JackWReid/tvpick/internal/ui"
)

var (
	// ErrCancelled is returned when the user leaves without choosing.
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoSelection is returned when the user accepts with no matches.
	ErrNoSelection = errors.New("no matching entry")
)

// Screen is the terminal as the picker loop uses it.
type Screen interface {
	Size() (int, int)
	Resize() bool
	SigwinchChan() <-chan os.Signal
	ReadEvents() ([]terminal.InputEvent, error)
	Write(frame string) error
}

// Options configure an App.
type Options struct {
	Prompt   string
	MaxRows  int // Picker height, 0 for the whole terminal
	Inverted bool
	Styles   ui.Styles
	Log      zerolog.Logger
}

// App is the picker session: one picker state, one candidate channel.
type App struct {
	screen    Screen
	channel   channel.Channel
	picker    *picker.Picker
	layout    *ui.Layout
	renderer  *ui.Renderer
	statusBar *ui.StatusBar
	opts      Options
	log       zerolog.Logger

	suggestion string
	result     channel.Entry
	err        error
	done       bool
}

func New(screen Screen, ch channel.Channel, opts Options) *App {
	p := picker.New()
	if opts.Inverted {
		p = p.Inverted()
	}
	w, h := screen.Size()
	return &App{
		screen:    screen,
		channel:   ch,
		picker:    p,
		layout:    ui.NewLayout(w, h, opts.MaxRows, opts.Inverted),
		renderer:  ui.NewRenderer(opts.Styles),
		statusBar: ui.NewStatusBar(),
		opts:      opts,
		log:       opts.Log,
	}
}

// Run draws the picker and handles input until the user accepts an entry
// or cancels, then returns the accepted entry.
func (a *App) Run(ctx context.Context) (channel.Entry, error) {
	a.picker.ResetInput()
	a.picker.ResetSelection()

	if err := a.render(); err != nil {
		return channel.Entry{}, err
	}

	// Main event loop.
	for !a.done {
		if err := ctx.Err(); err != nil {
			return channel.Entry{}, err
		}

		// Check for resize signal (non-blocking).
		select {
		case <-a.screen.SigwinchChan():
			a.screen.Resize()
			a.layout.Resize(a.screen.Size())
			a.picker.Clamp(a.channel.ResultCount(), a.layout.ListHeight())
			if err := a.render(); err != nil {
				return channel.Entry{}, err
			}
			continue
		default:
		}

		events, err := a.screen.ReadEvents()
		if err != nil {
			return channel.Entry{}, fmt.Errorf("reading input: %w", err)
		}

		for _, event := range events {
			a.handleInput(ctx, event)
			if a.done {
				break
			}
		}
		if !a.done {
			if err := a.render(); err != nil {
				return channel.Entry{}, err
			}
		}
	}

	return a.result, a.err
}

func (a *App) handleInput(ctx context.Context, event terminal.InputEvent) {
	// Clear any temporary status message on input.
	a.statusBar.ClearMessage()

	if event.Type == terminal.EventMouse {
		a.handleMouse(event.Mouse)
		return
	}

	total, height := a.channel.ResultCount(), a.layout.ListHeight()
	in := a.picker.Input()
	changed := false

	switch key := event.Key; key.Type {
	case terminal.KeyUp, terminal.KeyCtrlP, terminal.KeyCtrlK:
		a.picker.SelectPrev(total, height)
	case terminal.KeyDown, terminal.KeyCtrlN, terminal.KeyCtrlJ, terminal.KeyTab:
		a.picker.SelectNext(total, height)
	case terminal.KeyPgUp:
		a.picker.Step(-a.page(), total, height)
	case terminal.KeyPgDn:
		a.picker.Step(a.page(), total, height)
	case terminal.KeyEnter:
		a.accept()
	case terminal.KeyEscape, terminal.KeyCtrlC:
		a.err = ErrCancelled
		a.done = true
	case terminal.KeyRune:
		in.Insert(key.Rune)
		changed = true
	case terminal.KeyBackspace:
		changed = in.Backspace()
	case terminal.KeyDelete:
		changed = in.Delete()
	case terminal.KeyCtrlW:
		changed = in.DeleteWord()
	case terminal.KeyCtrlU:
		changed = in.Clear()
	case terminal.KeyLeft:
		in.Left()
	case terminal.KeyRight:
		in.Right()
	case terminal.KeyHome, terminal.KeyCtrlA:
		in.Home()
	case terminal.KeyEnd, terminal.KeyCtrlE:
		in.End()
	case terminal.KeyAltB:
		in.WordLeft()
	case terminal.KeyAltF:
		in.WordRight()
	}

	if changed {
		a.refilter(ctx)
	}
}

func (a *App) handleMouse(mouse terminal.MouseEvent) {
	total, height := a.channel.ResultCount(), a.layout.ListHeight()
	switch mouse.Button {
	case terminal.MouseWheelUp:
		a.picker.SelectPrev(total, height)
	case terminal.MouseWheelDown:
		a.picker.SelectNext(total, height)
	case terminal.MouseLeft:
		if !mouse.Press {
			return
		}
		if row, ok := a.layout.RowAt(mouse.Row); ok {
			a.picker.SelectRow(row, total, height)
		}
	}
}

// page is the number of rows a page key moves.
func (a *App) page() int {
	return max(a.layout.ContentRows(), 1)
}

func (a *App) accept() {
	a.done = true
	i, ok := a.picker.Selected()
	if !ok {
		a.err = ErrNoSelection
		return
	}
	e, ok := a.channel.Get(i)
	if !ok {
		a.err = ErrNoSelection
		return
	}
	a.result = e
	a.log.Info().Str("entry", e.Name).Int("index", e.Index).Msg("accepted")
}

// refilter runs the current query and starts the selection again from the
// first entry.
func (a *App) refilter(ctx context.Context) {
	query := a.picker.Input().Value()
	if err := a.channel.Find(ctx, query); err != nil {
		a.log.Error().Err(err).Str("query", query).Msg("find failed")
		a.statusBar.SetMessage(err.Error())
		return
	}
	a.picker.ResetSelection()
	a.suggestion = ""
	if a.channel.ResultCount() == 0 {
		a.suggestion, _ = a.channel.Suggest(query)
	}
}

func (a *App) render() error {
	total, height := a.channel.ResultCount(), a.layout.ListHeight()
	start, end := a.picker.Window(total, height)

	selected := -1
	if r, ok := a.picker.RelativeSelected(); ok && total > 0 {
		selected = r
	}

	in := a.picker.Input()
	frame := a.renderer.RenderFrame(ui.Frame{
		Layout:      a.layout,
		Entries:     a.channel.Results(end-start, start),
		Selected:    selected,
		Prompt:      a.opts.Prompt,
		Query:       in.Value(),
		Cursor:      in.Cursor(),
		StatusLeft:  a.statusBar.FormatLeft(total, in.Value(), a.suggestion),
		StatusRight: a.statusBar.FormatRight(total, a.channel.TotalCount()),
	})
	if err := a.screen.Write(frame); err != nil {
		return fmt.Errorf("drawing: %w", err)
	}
	return nil
}
