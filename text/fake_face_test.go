package text

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"
)

// fakeFace is a monospaced test face. Glyph ids equal rune values.
type fakeFace struct {
	name    string
	covered string // runes the face has; empty means all
	advance float64
	ink     float64 // ink width of non-space glyphs

	rasterErr error
	gate      chan struct{} // Rasterize blocks on it when non-nil

	started        atomic.Int64
	rasterizations atomic.Int64
	mu             sync.Mutex
	perGlyph       map[GlyphID]int
}

func newFakeFace(name string) *fakeFace {
	return &fakeFace{name: name, advance: 10, ink: 8, perGlyph: make(map[GlyphID]int)}
}

func (f *fakeFace) Name() string { return f.name }

func (f *fakeFace) HasGlyph(r rune) bool {
	return f.covered == "" || strings.ContainsRune(f.covered, r)
}

func (f *fakeFace) GlyphIndex(r rune) GlyphID {
	if !f.HasGlyph(r) {
		return 0
	}
	return GlyphID(r) //nolint:gosec // test runes are small
}

func (f *fakeFace) inkWidth(r rune) float64 {
	if r == ' ' {
		return 0
	}
	return f.ink
}

func (f *fakeFace) GlyphMetrics(r rune, size int) (GlyphMetrics, error) {
	w := f.inkWidth(r)
	return GlyphMetrics{
		Advance:  f.advance,
		BearingX: 1,
		BearingY: float64(size) * 0.75,
		Width:    w,
		Height:   float64(size),
	}, nil
}

func (f *fakeFace) Rasterize(id GlyphID, size int) (*Bitmap, error) {
	f.started.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.rasterizations.Add(1)
	f.mu.Lock()
	f.perGlyph[id]++
	f.mu.Unlock()

	if f.rasterErr != nil {
		return nil, f.rasterErr
	}
	w := int(f.inkWidth(rune(id)))
	if w == 0 {
		return &Bitmap{}, nil
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, size))
	for i := range mask.Pix {
		mask.Pix[i] = 0xFF
	}
	return &Bitmap{Mask: mask, Left: 1, Top: size * 3 / 4}, nil
}

// count returns how often glyph id was rasterized.
func (f *fakeFace) count(id GlyphID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.perGlyph[id]
}

var errFakeUpload = errors.New("fake upload failed")

// fakeFactory records created images.
type fakeFactory struct {
	mu     sync.Mutex
	images []*RGBAImage
	err    error
}

func (f *fakeFactory) NewImage(width, height int, pix []byte) (Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	img, err := RGBAImageFactory{}.NewImage(width, height, pix)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.images = append(f.images, img.(*RGBAImage))
	f.mu.Unlock()
	return img, nil
}

// disposed returns the number of disposed images.
func (f *fakeFactory) disposed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, img := range f.images {
		if img.Disposed() {
			n++
		}
	}
	return n
}

func (f *fakeFactory) created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.images)
}

// testStyle returns a style with one face at size 16.
func testStyle(faces ...Face) *Style {
	return &Style{
		Faces: faces,
		Size:  16,
		Color: color.RGBA{R: 0xFF, A: 0xFF},
	}
}

// lineStrings returns the text of every line.
func lineStrings(lines []*Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}
