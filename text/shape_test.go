package text

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/ggtext/internal/cache"
)

// countingShaper wraps BuiltinShaper and records its calls.
type countingShaper struct {
	mu    sync.Mutex
	calls []string
	drop  bool  // return one glyph too few
	err   error // returned instead of glyphs
}

func (s *countingShaper) Shape(face Face, size int, runes []rune) ([]ShapedGlyph, error) {
	s.mu.Lock()
	s.calls = append(s.calls, string(runes))
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	glyphs, err := BuiltinShaper{}.Shape(face, size, runes)
	if err != nil {
		return nil, err
	}
	for i := range glyphs {
		glyphs[i].XAdvance += 1
	}
	if s.drop && len(glyphs) > 0 {
		glyphs = glyphs[:len(glyphs)-1]
	}
	return glyphs, nil
}

// testLine builds a line from (face, text) parts at size 16.
func testLine(t *testing.T, parts ...any) *Line {
	t.Helper()
	l := &Line{}
	for i := 0; i < len(parts); i += 2 {
		face := parts[i].(Face)
		for _, r := range parts[i+1].(string) {
			m, err := face.GlyphMetrics(r, 16)
			if err != nil {
				t.Fatal(err)
			}
			l.append(&GlyphRecord{Kind: GlyphFace, Rune: r, Face: face, Size: 16, LineHeight: 16, Metrics: m})
		}
	}
	return l
}

func TestBuiltinShaper(t *testing.T) {
	face := newFakeFace("f")

	glyphs, err := BuiltinShaper{}.Shape(face, 16, []rune("ab"))
	if err != nil {
		t.Fatalf("Shape() error = %v", err)
	}
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}
	for i, r := range "ab" {
		if glyphs[i].GID != GlyphID(r) || glyphs[i].XAdvance != 10 {
			t.Errorf("glyph %d = %+v, want gid %d advance 10", i, glyphs[i], r)
		}
	}

	if glyphs, err := (BuiltinShaper{}).Shape(face, 16, nil); err != nil || glyphs != nil {
		t.Errorf("Shape(nil) = %v, %v", glyphs, err)
	}
}

func TestShapeLineGroups(t *testing.T) {
	f1, f2 := newFakeFace("one"), newFakeFace("two")
	shaper := &countingShaper{}
	ls := &lineShaper{shaper: shaper, log: nopLogger}

	out := ls.shapeLine(testLine(t, f1, "ab", f2, "c", f1, "d"))

	if got, want := strings.Join(shaper.calls, "|"), "ab|c|d"; got != want {
		t.Errorf("shaped groups = %q, want %q", got, want)
	}
	for i, ok := range out.shaped {
		if !ok {
			t.Errorf("glyph %d not shaped", i)
		}
		if out.glyphs[i].XAdvance != 11 {
			t.Errorf("glyph %d XAdvance = %v, want 11", i, out.glyphs[i].XAdvance)
		}
	}
}

func TestShapeLineMemo(t *testing.T) {
	face := newFakeFace("f")
	shaper := &countingShaper{}
	ls := &lineShaper{
		shaper: shaper,
		memo:   cache.New[shapeKey, []ShapedGlyph](8),
		log:    nopLogger,
	}

	line := testLine(t, face, "hello")
	ls.shapeLine(line)
	ls.shapeLine(line)

	if len(shaper.calls) != 1 {
		t.Errorf("shaper called %d times, want 1", len(shaper.calls))
	}
	if s := ls.memo.Stats(); s.Hits != 1 {
		t.Errorf("memo hits = %d, want 1", s.Hits)
	}
}

func TestShapeLineFallback(t *testing.T) {
	tests := []struct {
		name   string
		shaper *countingShaper
	}{
		{"misaligned", &countingShaper{drop: true}},
		{"error", &countingShaper{err: errors.New("no shaping tables")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ls := &lineShaper{shaper: tt.shaper, log: slog.New(slog.NewTextHandler(&buf, nil))}

			out := ls.shapeLine(testLine(t, newFakeFace("f"), "abc"))
			for i, ok := range out.shaped {
				if ok {
					t.Errorf("glyph %d marked shaped", i)
				}
			}
			if !strings.Contains(buf.String(), "raw metrics") {
				t.Errorf("no fallback warning logged: %q", buf.String())
			}
		})
	}
}

func TestShapeGroupMisaligned(t *testing.T) {
	ls := &lineShaper{shaper: &countingShaper{drop: true}, log: nopLogger}
	if _, err := ls.shapeGroup(newFakeFace("f"), 16, []rune("ab")); !errors.Is(err, ErrMisalignedShaping) {
		t.Errorf("shapeGroup() error = %v, want %v", err, ErrMisalignedShaping)
	}
}
