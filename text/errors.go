package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilFactory is returned when a GlyphCache is created without an ImageFactory.
	ErrNilFactory = errors.New("text: image factory is nil")

	// ErrNilStyle is returned when a Run has no Style.
	ErrNilStyle = errors.New("text: run has no style")

	// ErrUnsupportedFormat is returned by GPUImageFactory for texture formats
	// that are not 8-bit RGBA or BGRA.
	ErrUnsupportedFormat = errors.New("text: unsupported texture format")

	// ErrShaperUnsupported is returned by a Shaper that cannot shape the given face.
	ErrShaperUnsupported = errors.New("text: face not supported by shaper")

	// ErrMisalignedShaping is returned when a shaper does not return exactly
	// one glyph per input rune.
	ErrMisalignedShaping = errors.New("text: shaped glyphs do not align with input")
)
