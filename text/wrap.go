package text

import (
	"fmt"
	"log/slog"
)

// Line is an ordered sequence of glyphs plus their accumulated advance.
// Width always equals the sum of the glyph advances.
type Line struct {
	Glyphs []*GlyphRecord
	Width  float64
}

// append adds g to the end of the line.
func (l *Line) append(g *GlyphRecord) {
	l.Glyphs = append(l.Glyphs, g)
	l.Width += g.Metrics.Advance
}

// pop removes and returns the last glyph.
func (l *Line) pop() *GlyphRecord {
	n := len(l.Glyphs) - 1
	g := l.Glyphs[n]
	l.Glyphs[n] = nil
	l.Glyphs = l.Glyphs[:n]
	l.Width -= g.Metrics.Advance
	return g
}

// last returns the last glyph, or nil for an empty line.
func (l *Line) last() *GlyphRecord {
	if len(l.Glyphs) == 0 {
		return nil
	}
	return l.Glyphs[len(l.Glyphs)-1]
}

// Baseline returns the largest line height among the glyphs, or 0 for an
// empty line.
func (l *Line) Baseline() float64 {
	var baseline float64
	for _, g := range l.Glyphs {
		baseline = max(baseline, g.LineHeight)
	}
	return baseline
}

// String returns the runes of the line.
func (l *Line) String() string {
	runes := make([]rune, 0, len(l.Glyphs))
	for _, g := range l.Glyphs {
		runes = append(runes, g.Rune)
	}
	return string(runes)
}

// lineBreaker holds the state of one BreakLines call.
type lineBreaker struct {
	lines []*Line
	width float64
	mode  WrapMode
	rules wordBreaker
	log   *slog.Logger

	// unbroken counts the leading glyphs of the current line that have no
	// word break between them. Word wrapping never pops into that prefix.
	unbroken int

	// pending holds glyphs popped from the tail of a line during word
	// wrapping, last popped first.
	pending []*GlyphRecord
}

// current returns the line being filled.
func (b *lineBreaker) current() *Line {
	return b.lines[len(b.lines)-1]
}

// newLine starts a new empty line.
func (b *lineBreaker) newLine() {
	b.lines = append(b.lines, &Line{})
	b.unbroken = 0
}

// wordBreaker decides whether a line may break between previous and current.
type wordBreaker interface {
	IsWordBreak(current, previous rune) bool
}

// BreakLines splits measured glyphs into lines no wider than width.
//
// Line feed markers end the current line and are not kept. Other control
// markers are skipped with a warning; missing-glyph placeholders are
// skipped silently. Unknown modes behave like WrapNone after a warning.
// The result always contains at least one line.
func BreakLines(glyphs []*GlyphRecord, width float64, mode WrapMode, rules *WordBreakRules, log *slog.Logger) []*Line {
	if rules == nil {
		rules = DefaultWordBreakRules()
	}
	return breakLines(glyphs, width, mode, rules, log)
}

func breakLines(glyphs []*GlyphRecord, width float64, mode WrapMode, rules wordBreaker, log *slog.Logger) []*Line {
	b := &lineBreaker{
		lines: []*Line{{}},
		width: width,
		mode:  mode,
		rules: rules,
		log:   loggerOrNop(log),
	}

	switch mode {
	case WrapNone, WrapBreakCharacter, WrapBreakWord:
	default:
		b.log.Warn("text: unknown wrap mode, not wrapping", "mode", fmt.Sprintf("%d", mode))
		b.mode = WrapNone
	}

	for _, g := range glyphs {
		b.add(g)
	}
	return b.lines
}

// add feeds one glyph through the state machine.
func (b *lineBreaker) add(g *GlyphRecord) {
	switch g.Kind {
	case GlyphControl:
		if g.IsLineFeed() {
			b.newLine()
			return
		}
		b.log.Warn("text: control character not implemented", "rune", fmt.Sprintf("U+%04X", g.Rune))
		return
	case GlyphMissing:
		return
	}

	switch b.mode {
	case WrapBreakCharacter:
		if b.overflows(g) && len(b.current().Glyphs) > 0 {
			b.newLine()
		}
	case WrapBreakWord:
		if b.overflows(g) {
			b.wrapWord(g)
			b.current().append(g)
			b.unbroken = len(b.current().Glyphs)
			return
		}
	}

	b.current().append(g)
}

// overflows reports whether appending g would exceed the box width.
// Blank glyphs never overflow.
func (b *lineBreaker) overflows(g *GlyphRecord) bool {
	return g.Metrics.Width > 0 && b.current().Width+g.Metrics.Width > b.width
}

// wrapWord moves the word ending at the tail of the current line to a new
// line, so that next can be appended after it.
//
// Glyphs are popped while the boundary in front of the most recently
// considered glyph is not a word break. If glyphs remain on the line, the
// popped word starts a new line; otherwise the word alone is wider than the
// box and stays where it is. Reaching the unbroken prefix means the rest of
// the line belongs to the same word, so popping stops there.
func (b *lineBreaker) wrapWord(next *GlyphRecord) {
	line := b.current()
	if len(line.Glyphs) == 0 {
		return
	}

	b.pending = b.pending[:0]
	whole := false
	for tail := line.last(); tail != nil; tail = line.last() {
		if b.rules.IsWordBreak(next.Rune, tail.Rune) {
			break
		}
		if len(line.Glyphs) <= b.unbroken {
			whole = true
			break
		}
		b.pending = append(b.pending, line.pop())
		next = tail
	}

	if !whole && len(line.Glyphs) > 0 {
		b.newLine()
	}

	dst := b.current()
	for i := len(b.pending) - 1; i >= 0; i-- {
		dst.append(b.pending[i])
		b.pending[i] = nil
	}
	b.pending = b.pending[:0]
}
