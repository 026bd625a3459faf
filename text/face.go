package text

import "image"

// Face is a loaded font resource that can report coverage, measure and
// rasterize glyphs at a pixel size.
//
// The face value is its identity: it is used as part of GlyphKey and as the
// key of per-face shaping state. Implementations must therefore be
// comparable, which in practice means pointer types.
//
// Faces are shared between layouts. Implementations that keep mutable
// per-face state (scratch buffers, a selected size) must guard it themselves
// or be used from one goroutine at a time.
type Face interface {
	// Name returns a human readable name used in diagnostics.
	Name() string

	// HasGlyph reports whether the face has a glyph for r.
	HasGlyph(r rune) bool

	// GlyphIndex returns the glyph id for r, or 0 if the face has none.
	GlyphIndex(r rune) GlyphID

	// GlyphMetrics returns the raw metrics of r at the given pixel size.
	GlyphMetrics(r rune, size int) (GlyphMetrics, error)

	// Rasterize renders glyph id at the given pixel size into an intensity bitmap.
	Rasterize(id GlyphID, size int) (*Bitmap, error)
}

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint16

// GlyphMetrics holds the raw metrics of one glyph at a pixel size.
type GlyphMetrics struct {
	// Advance is the horizontal pen displacement after the glyph.
	Advance float64

	// BearingX is the distance from the pen to the left edge of the ink.
	BearingX float64

	// BearingY is the distance from the baseline up to the top of the ink.
	BearingY float64

	// Width and Height are the ink extents. Width is zero for blank glyphs.
	Width, Height float64
}

// Bitmap is a rasterized glyph.
type Bitmap struct {
	// Mask holds one intensity value per pixel. Its bounds start at (0, 0).
	Mask *image.Alpha

	// Left is the horizontal offset from the pen to the bitmap's left edge.
	Left int

	// Top is the distance from the baseline up to the bitmap's top edge.
	Top int
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int {
	if b == nil || b.Mask == nil {
		return 0
	}
	return b.Mask.Rect.Dx()
}

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int {
	if b == nil || b.Mask == nil {
		return 0
	}
	return b.Mask.Rect.Dy()
}
