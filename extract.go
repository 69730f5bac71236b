package sentsplit

import (
	"strings"
	"unicode/utf8"
)

// Cut is the decision taken for one window.
type Cut struct {
	// Text is the emitted part of the window with surrounding whitespace
	// trimmed. It may be empty when the window held only whitespace before
	// the chosen boundary.
	Text string
	// Next is the byte offset inside the window where the following window
	// starts. It is at least 1 for any non-empty window.
	Next int
	// Class is the boundary class the cut was made on; ClassOther means
	// no boundary was found and the whole window was taken.
	Class Class
}

// markers holds the right-most boundary of each class seen by the
// backward scan, as byte offsets into the window. -1 means unset.
type markers struct {
	terminalAt int
	internalAt int
	spaceAt    int
}

// Extract picks the cut point for window. The window is scanned once from
// its end towards its start; the right-most terminal character wins
// outright, otherwise the right-most internal character, otherwise the
// right-most space (which is consumed but not emitted). With no boundary
// at all the whole window is taken.
//
// A boundary at offset 0 is a valid cut point.
func Extract(window string) Cut {
	if window == "" {
		return Cut{}
	}

	m := scan(window)

	var cut Cut
	switch {
	case m.terminalAt >= 0:
		cut = Cut{Text: window[:m.terminalAt+1], Next: m.terminalAt + 1, Class: ClassTerminal}
	case m.internalAt >= 0:
		cut = Cut{Text: window[:m.internalAt+1], Next: m.internalAt + 1, Class: ClassInternal}
	case m.spaceAt >= 0:
		cut = Cut{Text: window[:m.spaceAt], Next: m.spaceAt + 1, Class: ClassSpace}
	default:
		cut = Cut{Text: window, Next: len(window), Class: ClassOther}
	}

	cut.Text = strings.TrimSpace(cut.Text)
	return cut
}

// scan walks window backwards rune by rune and records boundary markers.
// All boundary characters are single-byte, so offset+1 is always the
// offset just past the boundary.
func scan(window string) markers {
	m := markers{terminalAt: -1, internalAt: -1, spaceAt: -1}

	for i := len(window); i > 0; {
		r, size := utf8.DecodeLastRuneInString(window[:i])
		i -= size

		switch Classify(r) {
		case ClassTerminal:
			m.terminalAt = i
			return m
		case ClassInternal:
			if m.internalAt < 0 {
				m.internalAt = i
			}
		case ClassSpace:
			if m.spaceAt < 0 {
				m.spaceAt = i
			}
		}
	}

	return m
}
