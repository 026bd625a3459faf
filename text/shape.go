package text

import (
	"log/slog"

	"github.com/gogpu/ggtext/internal/cache"
)

// shapeKey identifies a memoized shaping result.
type shapeKey struct {
	face Face
	size int
	text string
}

// shapedLine is the shaping result for one Line, aligned with its glyphs.
type shapedLine struct {
	glyphs []ShapedGlyph
	// shaped[i] is false where glyph i fell back to raw metrics.
	shaped []bool
}

// lineShaper groups the glyphs of a line by face and size and shapes each
// group with a Shaper.
type lineShaper struct {
	shaper Shaper
	memo   *cache.Cache[shapeKey, []ShapedGlyph]
	log    *slog.Logger
}

// shapeLine shapes every maximal sub-run of line that shares face and size.
// Sub-runs the shaper rejects keep their raw metrics and are reported.
func (s *lineShaper) shapeLine(line *Line) shapedLine {
	n := len(line.Glyphs)
	out := shapedLine{
		glyphs: make([]ShapedGlyph, n),
		shaped: make([]bool, n),
	}

	runes := make([]rune, 0, n)
	for start := 0; start < n; {
		first := line.Glyphs[start]
		end := start + 1
		for end < n && sameShapingGroup(first, line.Glyphs[end]) {
			end++
		}

		runes = runes[:0]
		for _, g := range line.Glyphs[start:end] {
			runes = append(runes, g.Rune)
		}

		glyphs, err := s.shapeGroup(first.Face, first.Size, runes)
		if err != nil {
			s.log.Warn("text: shaping failed, using raw metrics",
				"face", first.Face.Name(), "size", first.Size, "text", string(runes), "err", err)
		} else {
			copy(out.glyphs[start:end], glyphs)
			for i := start; i < end; i++ {
				out.shaped[i] = true
			}
		}
		start = end
	}
	return out
}

// shapeGroup shapes runes with face at size, consulting the memo first.
func (s *lineShaper) shapeGroup(face Face, size int, runes []rune) ([]ShapedGlyph, error) {
	key := shapeKey{face: face, size: size, text: string(runes)}
	if s.memo != nil {
		if glyphs, ok := s.memo.Get(key); ok {
			return glyphs, nil
		}
	}

	glyphs, err := s.shaper.Shape(face, size, runes)
	if err != nil {
		return nil, err
	}
	if len(glyphs) != len(runes) {
		return nil, ErrMisalignedShaping
	}

	if s.memo != nil {
		s.memo.Add(key, glyphs)
	}
	return glyphs, nil
}

// sameShapingGroup reports whether a and b can be shaped together.
func sameShapingGroup(a, b *GlyphRecord) bool {
	return a.Face == b.Face && a.Size == b.Size
}
