package text

import (
	"fmt"
	"strings"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// WrapMode specifies how glyphs are distributed over lines when they
// exceed the width of the layout box.
type WrapMode uint8

const (
	// WrapNone never breaks a line except at explicit line feeds.
	WrapNone WrapMode = iota

	// WrapBreakCharacter starts a new line before any glyph that would overflow.
	WrapBreakCharacter

	// WrapBreakWord moves the overflowing word to a new line.
	// A word wider than the box stays on its own line and overflows.
	WrapBreakWord
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "None"
	case WrapBreakCharacter:
		return "BreakCharacter"
	case WrapBreakWord:
		return "BreakWord"
	default:
		return unknownStr
	}
}

// ParseWrapMode parses a wrap mode name as produced by WrapMode.String.
// Short forms "none", "char" and "word" are accepted too.
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return WrapNone, nil
	case "breakcharacter", "char", "character":
		return WrapBreakCharacter, nil
	case "breakword", "word":
		return WrapBreakWord, nil
	default:
		return WrapNone, fmt.Errorf("text: unknown wrap mode %q", s)
	}
}

// Hinting specifies font hinting mode.
type Hinting int

const (
	// HintingNone disables hinting.
	HintingNone Hinting = iota
	// HintingVertical applies vertical hinting only.
	HintingVertical
	// HintingFull applies full hinting.
	HintingFull
)

// String returns the string representation of the hinting.
func (h Hinting) String() string {
	switch h {
	case HintingNone:
		return "None"
	case HintingVertical:
		return "Vertical"
	case HintingFull:
		return "Full"
	default:
		return unknownStr
	}
}

// Box is the destination rectangle of a layout.
// Only Width limits the layout; Height is informational.
type Box struct {
	X, Y          float64
	Width, Height float64
}
