package text

import (
	"fmt"
	"image/color"
)

// GlyphKind distinguishes drawable glyphs from markers.
type GlyphKind uint8

const (
	// GlyphFace is a glyph resolved to a face.
	GlyphFace GlyphKind = iota

	// GlyphControl marks a control character such as a line feed.
	GlyphControl

	// GlyphMissing replaces a rune no candidate face covers.
	GlyphMissing
)

// String returns the string representation of the glyph kind.
func (k GlyphKind) String() string {
	switch k {
	case GlyphFace:
		return "Face"
	case GlyphControl:
		return "Control"
	case GlyphMissing:
		return "Missing"
	default:
		return unknownStr
	}
}

// GlyphRecord is one measured glyph.
//
// Control and missing records have no face and zero metrics; they are never
// rasterized. The missing placeholder always has Rune 0.
type GlyphRecord struct {
	Kind GlyphKind

	// Rune is the source codepoint.
	Rune rune

	// Face is the resolved face, nil for markers.
	Face Face

	Size       int
	LineHeight float64
	Color      color.RGBA

	// Metrics are the raw metrics from Face at Size.
	Metrics GlyphMetrics
}

// IsLineFeed reports whether g is a line feed marker.
func (g *GlyphRecord) IsLineFeed() bool {
	return g.Kind == GlyphControl && g.Rune == '\n'
}

// String returns a short description for diagnostics.
func (g *GlyphRecord) String() string {
	if g.Face == nil {
		return fmt.Sprintf("%s(U+%04X)", g.Kind, g.Rune)
	}
	return fmt.Sprintf("%q@%s/%d", g.Rune, g.Face.Name(), g.Size)
}

// missingGlyph is the placeholder for unresolved runes.
func missingGlyph() *GlyphRecord {
	return &GlyphRecord{Kind: GlyphMissing}
}

// controlGlyph returns a marker for the control character r.
func controlGlyph(r rune) *GlyphRecord {
	return &GlyphRecord{Kind: GlyphControl, Rune: r}
}
