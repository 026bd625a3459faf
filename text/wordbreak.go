package text

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// WordBreakRules classifies the boundary between two adjacent runes.
//
// The four sets and the letter-or-digit table are locale data; build them
// with NewWordBreakRules, DefaultWordBreakRules or LoadWordBreakRules.
// A nil table is treated as empty. WordBreakRules is read-only after
// construction and safe for concurrent use.
type WordBreakRules struct {
	// BreakAfter holds runes after which a break is always allowed.
	BreakAfter *unicode.RangeTable

	// BreakBefore holds runes before which a break is always allowed.
	BreakBefore *unicode.RangeTable

	// NoBreakAfter holds runes after which a break is never allowed.
	NoBreakAfter *unicode.RangeTable

	// NoBreakBefore holds runes before which a break is never allowed.
	NoBreakBefore *unicode.RangeTable

	// LetterOrDigit holds the runes that form unbreakable words.
	LetterOrDigit *unicode.RangeTable
}

// NewWordBreakRules builds rules from explicit rune sets.
func NewWordBreakRules(breakAfter, breakBefore, noBreakAfter, noBreakBefore []rune, letterOrDigit *unicode.RangeTable) *WordBreakRules {
	return &WordBreakRules{
		BreakAfter:    rangetable.New(breakAfter...),
		BreakBefore:   rangetable.New(breakBefore...),
		NoBreakAfter:  rangetable.New(noBreakAfter...),
		NoBreakBefore: rangetable.New(noBreakBefore...),
		LetterOrDigit: letterOrDigit,
	}
}

// IsWordBreak reports whether a line may break between previous and current.
//
// Explicit break sets win over no-break sets. Without an explicit rule a
// break is allowed unless both runes are letters or digits.
func (w *WordBreakRules) IsWordBreak(current, previous rune) bool {
	if inTable(w.BreakAfter, previous) || inTable(w.BreakBefore, current) {
		return true
	}
	if inTable(w.NoBreakAfter, previous) || inTable(w.NoBreakBefore, current) {
		return false
	}
	if inTable(w.LetterOrDigit, previous) && inTable(w.LetterOrDigit, current) {
		return false
	}
	return true
}

func inTable(t *unicode.RangeTable, r rune) bool {
	return t != nil && unicode.Is(t, r)
}

// DefaultWordBreakRules returns rules for Latin, Greek and Cyrillic text.
// Runes outside the letter-or-digit table, such as CJK ideographs, may
// break anywhere.
func DefaultWordBreakRules() *WordBreakRules {
	return defaultWordBreakRules
}

var defaultWordBreakRules = NewWordBreakRules(
	[]rune{
		' ', '\t', '-', '/',
		'\u2000', '\u2001', '\u2002', '\u2003', '\u2004', '\u2005', '\u2006',
		'\u2008', '\u2009', '\u200A', '\u205F', '\u3000', // spaces, excluding no-break variants
		'\u200B', // zero-width space
		'\u2010', '\u2012', '\u2013', '\u2014', // hyphen and dashes
		'\u3001', '\u3002', // ideographic comma and full stop
	},
	nil,
	[]rune{
		'(', '[', '{', '\u00A0', '\u00AB', '\u2018', '\u201C',
		'\u3008', '\u300A', '\u300C', '\u300E', '\u3010', '\uFF08',
	},
	[]rune{
		')', ']', '}', ',', '.', ';', ':', '!', '?', '\u00A0', '\u00BB',
		'\u2019', '\u201D', '\u2026',
		'\u3001', '\u3002', '\u3009', '\u300B', '\u300D', '\u300F', '\u3011',
		'\uFF09', '\uFF0C', '\uFF01', '\uFF1F',
	},
	rangetable.Merge(
		unicode.Latin,
		unicode.Greek,
		unicode.Cyrillic,
		unicode.Nd,
		rangetable.New('\'', '\u2019'), // word-internal apostrophes
	),
)
