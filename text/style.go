package text

import "image/color"

// Style describes how the text of a Run is rendered.
// A Style is read-only while a layout uses it.
type Style struct {
	// Faces are the font candidates in fallback order.
	Faces []Face

	// Size is the pixel size.
	Size int

	// LineHeight is the height of a line holding glyphs of this style.
	// Values <= 0 use Size.
	LineHeight float64

	// Color is the glyph color, including alpha.
	Color color.RGBA
}

// lineHeight returns the effective line height.
func (s *Style) lineHeight() float64 {
	if s.LineHeight > 0 {
		return s.LineHeight
	}
	return float64(s.Size)
}

// Run is a piece of text with a uniform Style.
// Consecutive runs form one paragraph; only line feeds start new lines.
type Run struct {
	Text  string
	Style *Style
}
