package terminal

import "unicode/utf8"

// KeyType identifies a decoded key.
type KeyType int

const (
	KeyRune KeyType = iota // Printable character in Key.Rune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlC
	KeyCtrlE
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlN
	KeyCtrlP
	KeyCtrlU
	KeyCtrlW
	KeyHome
	KeyEnd
	KeyDelete // Forward delete
	KeyPgUp
	KeyPgDn
	KeyAltB // Alt+B or Ctrl+Left, word left
	KeyAltF // Alt+F or Ctrl+Right, word right
	KeyUnknown
)

type Key struct {
	Type KeyType
	Rune rune
}

// EventType tells which field of an InputEvent is set.
type EventType int

const (
	EventKey EventType = iota
	EventMouse
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseUnknown
)

type MouseEvent struct {
	Button MouseButton
	Row    int  // 1-based terminal row
	Col    int  // 1-based terminal column
	Press  bool // false for a release
}

type InputEvent struct {
	Type  EventType
	Key   Key
	Mouse MouseEvent
}

const esc = 0x1b

// controlKeys maps single bytes below space (and DEL) to keys.
var controlKeys = map[byte]KeyType{
	1:   KeyCtrlA,
	3:   KeyCtrlC,
	5:   KeyCtrlE,
	8:   KeyBackspace,
	9:   KeyTab,
	10:  KeyCtrlJ,
	11:  KeyCtrlK,
	13:  KeyEnter,
	14:  KeyCtrlN,
	16:  KeyCtrlP,
	21:  KeyCtrlU,
	23:  KeyCtrlW,
	127: KeyBackspace,
}

// escapeKeys maps complete escape sequences to keys. Cursor keys come in
// both CSI (ESC [) and SS3 (ESC O, application cursor mode) forms.
var escapeKeys = map[string]KeyType{
	"\x1b[A": KeyUp, "\x1bOA": KeyUp,
	"\x1b[B": KeyDown, "\x1bOB": KeyDown,
	"\x1b[C": KeyRight, "\x1bOC": KeyRight,
	"\x1b[D": KeyLeft, "\x1bOD": KeyLeft,
	"\x1b[H": KeyHome, "\x1bOH": KeyHome,
	"\x1b[F": KeyEnd, "\x1bOF": KeyEnd,

	"\x1b[1~": KeyHome, "\x1b[7~": KeyHome,
	"\x1b[4~": KeyEnd, "\x1b[8~": KeyEnd,
	"\x1b[3~": KeyDelete,
	"\x1b[5~": KeyPgUp,
	"\x1b[6~": KeyPgDn,

	"\x1bb": KeyAltB, "\x1b[1;5D": KeyAltB,
	"\x1bf": KeyAltF, "\x1b[1;5C": KeyAltF,
}

// maxEscapeLen is the length of the longest sequence in escapeKeys.
const maxEscapeLen = 6

// parseInputs splits one read into events. Text is decoded rune by rune so
// a paste yields one event per character; known escape sequences are cut
// off one at a time so repeated arrows in a single read all count. An
// unrecognised escape sequence swallows the rest of the read.
func parseInputs(buf []byte) []InputEvent {
	if len(buf) == 0 {
		return []InputEvent{keyEvent(KeyUnknown, 0)}
	}
	var events []InputEvent
	for len(buf) > 0 {
		ev, n := nextEvent(buf)
		events = append(events, ev)
		buf = buf[n:]
	}
	return events
}

// nextEvent decodes the event at the start of buf and its length in bytes.
func nextEvent(buf []byte) (InputEvent, int) {
	if buf[0] != esc {
		return decodeRune(buf)
	}
	if len(buf) == 1 {
		return keyEvent(KeyEscape, 0), 1
	}
	if m, n, ok := parseMouse(buf); ok {
		return InputEvent{Type: EventMouse, Mouse: m}, n
	}
	for n := min(len(buf), maxEscapeLen); n >= 2; n-- {
		if k, ok := escapeKeys[string(buf[:n])]; ok {
			return keyEvent(k, 0), n
		}
	}
	return keyEvent(KeyUnknown, 0), len(buf)
}

func decodeRune(buf []byte) (InputEvent, int) {
	r, size := utf8.DecodeRune(buf)
	if size == 1 {
		if k, ok := controlKeys[buf[0]]; ok {
			return keyEvent(k, 0), 1
		}
	}
	if r < ' ' || r == 127 || r == utf8.RuneError {
		return keyEvent(KeyUnknown, 0), size
	}
	return keyEvent(KeyRune, r), size
}

func keyEvent(k KeyType, r rune) InputEvent {
	return InputEvent{Type: EventKey, Key: Key{Type: k, Rune: r}}
}

// parseMouse decodes an SGR mouse report, ESC [ < button ; col ; row
// followed by M (press) or m (release), and returns its length.
func parseMouse(buf []byte) (MouseEvent, int, bool) {
	if len(buf) < 3 || buf[0] != esc || buf[1] != '[' || buf[2] != '<' {
		return MouseEvent{}, 0, false
	}
	var fields [3]int
	i := 3
	for f := range fields {
		start := i
		for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
			fields[f] = fields[f]*10 + int(buf[i]-'0')
			i++
		}
		if i == start || i >= len(buf) {
			return MouseEvent{}, 0, false
		}
		if f < len(fields)-1 {
			if buf[i] != ';' {
				return MouseEvent{}, 0, false
			}
			i++
		}
	}
	if buf[i] != 'M' && buf[i] != 'm' {
		return MouseEvent{}, 0, false
	}
	return MouseEvent{
		Button: mouseButton(fields[0]),
		Col:    fields[1],
		Row:    fields[2],
		Press:  buf[i] == 'M',
	}, i + 1, true
}

// mouseButton maps an SGR button code. Wheel events set bit 6.
func mouseButton(code int) MouseButton {
	switch code {
	case 64:
		return MouseWheelUp
	case 65:
		return MouseWheelDown
	}
	if code&0x40 != 0 {
		return MouseUnknown
	}
	switch code & 0x03 {
	case 0:
		return MouseLeft
	case 1:
		return MouseMiddle
	case 2:
		return MouseRight
	}
	return MouseUnknown
}
