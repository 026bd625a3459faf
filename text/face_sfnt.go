package text

import (
	"fmt"
	"image"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// FaceOption configures an SfntFace.
type FaceOption func(*faceConfig)

type faceConfig struct {
	hinting Hinting
	name    string
}

// WithHinting sets the hinting used for metrics. Default is HintingNone.
func WithHinting(h Hinting) FaceOption {
	return func(c *faceConfig) {
		c.hinting = h
	}
}

// WithFaceName overrides the name read from the font's name table.
func WithFaceName(name string) FaceOption {
	return func(c *faceConfig) {
		c.name = name
	}
}

// SfntFace is a Face backed by a TrueType or OpenType font parsed with
// golang.org/x/image/font/opentype. Glyphs are rasterized from their
// outlines with golang.org/x/image/vector.
//
// SfntFace is safe for concurrent use.
type SfntFace struct {
	data    []byte
	font    *sfnt.Font
	name    string
	hinting font.Hinting

	coverage *coverageMap

	// mu guards buf, which sfnt needs for every glyph query.
	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewSfntFace parses TrueType or OpenType font data.
// The data must not be modified afterwards.
func NewSfntFace(data []byte, opts ...FaceOption) (*SfntFace, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	cfg := faceConfig{hinting: HintingNone}
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	face := &SfntFace{
		data:     data,
		font:     f,
		hinting:  toXHinting(cfg.hinting),
		coverage: newCoverageMap(),
	}
	face.name = cfg.name
	if face.name == "" {
		face.name = face.readName()
	}
	return face, nil
}

// NewSfntFaceFromFile loads a font file and parses it with NewSfntFace.
func NewSfntFaceFromFile(path string, opts ...FaceOption) (*SfntFace, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, fmt.Errorf("text: read font %s: %w", path, err)
	}
	return NewSfntFace(data, opts...)
}

// readName returns the full name, falling back to the family name.
func (f *SfntFace) readName() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range []sfnt.NameID{sfnt.NameIDFull, sfnt.NameIDFamily} {
		if s, err := f.font.Name(&f.buf, id); err == nil && s != "" {
			return s
		}
	}
	return "sfnt"
}

// toXHinting maps Hinting to x/image hinting.
func toXHinting(h Hinting) font.Hinting {
	switch h {
	case HintingVertical:
		return font.HintingVertical
	case HintingFull:
		return font.HintingFull
	default:
		return font.HintingNone
	}
}

// Name implements Face.
func (f *SfntFace) Name() string {
	return f.name
}

// Data returns the raw font data.
func (f *SfntFace) Data() []byte {
	return f.data
}

// NumGlyphs returns the number of glyphs in the font.
func (f *SfntFace) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// HasGlyph implements Face.
func (f *SfntFace) HasGlyph(r rune) bool {
	return f.coverage.lookup(r, func(r rune) bool {
		return f.GlyphIndex(r) != 0
	})
}

// GlyphIndex implements Face.
func (f *SfntFace) GlyphIndex(r rune) GlyphID {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphMetrics implements Face.
func (f *SfntFace) GlyphMetrics(r rune, size int) (GlyphMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return GlyphMetrics{}, fmt.Errorf("text: glyph index: %w", err)
	}

	bounds, advance, err := f.font.GlyphBounds(&f.buf, idx, fixed.I(size), f.hinting)
	if err != nil {
		return GlyphMetrics{}, fmt.Errorf("text: glyph bounds: %w", err)
	}

	// sfnt bounds grow downwards.
	return GlyphMetrics{
		Advance:  fixedToFloat(advance),
		BearingX: fixedToFloat(bounds.Min.X),
		BearingY: -fixedToFloat(bounds.Min.Y),
		Width:    fixedToFloat(bounds.Max.X - bounds.Min.X),
		Height:   fixedToFloat(bounds.Max.Y - bounds.Min.Y),
	}, nil
}

// Rasterize implements Face. Blank glyphs yield a bitmap without a mask.
func (f *SfntFace) Rasterize(id GlyphID, size int) (*Bitmap, error) {
	f.mu.Lock()
	segs, err := f.font.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), fixed.I(size), nil)
	if err != nil {
		f.mu.Unlock()
		return nil, fmt.Errorf("text: load glyph %d: %w", id, err)
	}
	// segs aliases buf.
	segs = append(sfnt.Segments(nil), segs...)
	f.mu.Unlock()

	if len(segs) == 0 {
		return &Bitmap{}, nil
	}

	b := segs.Bounds()
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	w, h := b.Max.X.Ceil()-minX, b.Max.Y.Ceil()-minY
	if w <= 0 || h <= 0 {
		return &Bitmap{}, nil
	}

	dx, dy := float32(minX), float32(minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - dx, float32(p.Y)/64 - dy
	}

	z := vector.NewRasterizer(w, h)
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			z.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &Bitmap{Mask: mask, Left: minX, Top: -minY}, nil
}
