package text

// BuiltinShaper maps runes through the face's character map and uses the
// raw advances. It applies no kerning, ligatures or contextual forms.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements the Shaper interface.
func (BuiltinShaper) Shape(face Face, size int, runes []rune) ([]ShapedGlyph, error) {
	if face == nil || len(runes) == 0 {
		return nil, nil
	}

	result := make([]ShapedGlyph, 0, len(runes))
	for _, r := range runes {
		m, err := face.GlyphMetrics(r, size)
		if err != nil {
			return nil, err
		}
		result = append(result, ShapedGlyph{
			GID:      face.GlyphIndex(r),
			XAdvance: m.Advance,
		})
	}
	return result, nil
}
