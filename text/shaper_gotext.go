package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// FontDataFace is implemented by faces that can hand their raw font file
// to GoTextShaper.
type FontDataFace interface {
	Face
	Data() []byte
}

// GoTextShaper shapes through go-text/typesetting's HarfBuzz port, applying
// kerning and OpenType substitutions. Faces must implement FontDataFace.
//
// One shaping context is created per distinct face on first use and kept
// for the lifetime of the shaper. A context's go-text face and HarfBuzz
// buffer are not safe for concurrent use, so each context serializes its
// callers; distinct faces shape in parallel.
//
// Ligatures break the one-glyph-per-rune alignment the engine expects; the
// engine falls back to raw metrics for such sub-runs.
type GoTextShaper struct {
	// Language is passed to HarfBuzz. Defaults to "en".
	Language language.Language

	mu       sync.Mutex
	contexts map[Face]*shapingContext
}

// shapingContext is the per-face HarfBuzz state. A face that cannot be
// shaped keeps a context holding only err.
type shapingContext struct {
	mu     sync.Mutex
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	err    error
}

// NewGoTextShaper creates a new GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		Language: language.NewLanguage("en"),
		contexts: make(map[Face]*shapingContext),
	}
}

// Shape implements the Shaper interface.
func (s *GoTextShaper) Shape(face Face, size int, runes []rune) ([]ShapedGlyph, error) {
	if face == nil || len(runes) == 0 {
		return nil, nil
	}

	ctx, err := s.context(face)
	if err != nil {
		return nil, err
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      ctx.face,
		Size:      fixed.I(size),
		Script:    detectScript(runes),
		Language:  s.Language,
	}

	ctx.mu.Lock()
	output := ctx.shaper.Shape(input)
	ctx.mu.Unlock()

	if len(output.Glyphs) != len(runes) {
		return nil, fmt.Errorf("%w: %d glyphs for %d runes", ErrMisalignedShaping, len(output.Glyphs), len(runes))
	}

	result := make([]ShapedGlyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		if g.ClusterIndex != i {
			return nil, fmt.Errorf("%w: glyph %d maps to rune %d", ErrMisalignedShaping, i, g.ClusterIndex)
		}
		result[i] = ShapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph ids are 16-bit
			XAdvance: fixedToFloat(g.Advance),
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  fixedToFloat(g.YOffset),
		}
	}
	return result, nil
}

// context returns the shaping context for face, creating it on first use.
func (s *GoTextShaper) context(face Face) (*shapingContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contexts == nil {
		s.contexts = make(map[Face]*shapingContext)
	}
	ctx, ok := s.contexts[face]
	if !ok {
		ctx = newShapingContext(face)
		s.contexts[face] = ctx
	}
	if ctx.err != nil {
		return nil, ctx.err
	}
	return ctx, nil
}

func newShapingContext(face Face) *shapingContext {
	df, ok := face.(FontDataFace)
	if !ok {
		return &shapingContext{err: fmt.Errorf("%w: %s has no font data", ErrShaperUnsupported, face.Name())}
	}
	goTextFace, err := font.ParseTTF(bytes.NewReader(df.Data()))
	if err != nil {
		return &shapingContext{err: fmt.Errorf("text: parse %s for shaping: %w", face.Name(), err)}
	}
	return &shapingContext{face: goTextFace}
}

// Contexts returns the number of faces seen so far, including faces that
// failed to load.
func (s *GoTextShaper) Contexts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contexts)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
