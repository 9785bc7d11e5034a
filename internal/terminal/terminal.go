package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// ErrNotPiped is returned when stdin is a terminal and there is nothing to
// pick from.
var ErrNotPiped = errors.New("stdin is a terminal: pipe candidates into tvpick or name a directory")

// Screen modes: alternate buffer, hidden cursor, button and SGR mouse
// reporting. leaveModes undoes them in reverse order.
const (
	enterModes = "\x1b[?1049h\x1b[?25l\x1b[?1000h\x1b[?1006h"
	leaveModes = "\x1b[?1006l\x1b[?1000l\x1b[?25h\x1b[?1049l"
)

// readSize fits a pasted line or several escape sequences per read.
const readSize = 256

// IsPiped reports whether f is not attached to a terminal.
func IsPiped(f *os.File) bool {
	return !term.IsTerminal(int(f.Fd()))
}

// Terminal is the controlling tty opened beside stdin and stdout, which stay
// free for candidates and the result.
type Terminal struct {
	tty      *tty.TTY
	in       *os.File
	out      *os.File
	oldState *term.State
	width    int
	height   int
	sigwinch chan os.Signal
	buf      []byte
}

// NewTerminal opens /dev/tty in raw mode and switches to the alternate
// screen. Ctrl-C arrives as a key rather than SIGINT.
func NewTerminal() (*Terminal, error) {
	tt, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("opening tty: %w", err)
	}
	t := &Terminal{
		tty: tt,
		in:  tt.Input(),
		out: tt.Output(),
		buf: make([]byte, readSize),
	}

	if t.oldState, err = term.MakeRaw(int(t.in.Fd())); err != nil {
		tt.Close()
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	if _, err := t.out.WriteString(enterModes); err != nil {
		t.Restore()
		return nil, fmt.Errorf("entering alternate screen: %w", err)
	}
	if t.width, t.height, err = term.GetSize(int(t.out.Fd())); err != nil {
		t.Restore()
		return nil, fmt.Errorf("terminal size: %w", err)
	}

	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, syscall.SIGWINCH)
	return t, nil
}

// Resize re-reads the terminal size and reports whether it changed.
func (t *Terminal) Resize() bool {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil || (w == t.width && h == t.height) {
		return false
	}
	t.width, t.height = w, h
	return true
}

// Size returns the width and height read by the last NewTerminal or Resize.
func (t *Terminal) Size() (int, int) { return t.width, t.height }

// SigwinchChan receives a value whenever the window size changes.
func (t *Terminal) SigwinchChan() <-chan os.Signal { return t.sigwinch }

// Output returns the tty output, for colour detection.
func (t *Terminal) Output() *os.File { return t.out }

// Write draws a frame.
func (t *Terminal) Write(frame string) error {
	_, err := t.out.WriteString(frame)
	return err
}

// ReadEvents blocks until input arrives and returns every event in it.
func (t *Terminal) ReadEvents() ([]InputEvent, error) {
	n, err := t.in.Read(t.buf)
	if err != nil {
		return nil, err
	}
	return parseInputs(t.buf[:n]), nil
}

// Restore leaves the alternate screen, restores the saved tty mode and
// closes the tty. The Terminal is unusable afterwards.
func (t *Terminal) Restore() {
	if t.sigwinch != nil {
		signal.Stop(t.sigwinch)
	}
	t.out.WriteString(leaveModes)
	if t.oldState != nil {
		term.Restore(int(t.in.Fd()), t.oldState)
	}
	t.tty.Close()
}
