package text

// Shaper converts a rune sequence into glyph ids and advances for one face
// at one pixel size.
//
// The layout engine relies on the result having exactly one ShapedGlyph per
// input rune, in input order. Shapers that merge ligatures or reorder
// glyphs do not satisfy this; the engine then falls back to raw metrics for
// the affected sub-run.
type Shaper interface {
	Shape(face Face, size int, runes []rune) ([]ShapedGlyph, error)
}

// ShapedGlyph is the shaper's answer for one input rune.
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// XAdvance is the horizontal pen displacement after the glyph.
	XAdvance float64

	// XOffset, YOffset shift the glyph from the pen position.
	// YOffset points up.
	XOffset float64
	YOffset float64
}
