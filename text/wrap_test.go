package text

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"unicode"
)

// breakText measures text with a single fake face and breaks it.
func breakText(t *testing.T, text string, width float64, mode WrapMode) []*Line {
	t.Helper()
	glyphs, err := Measure([]Run{{Text: text, Style: testStyle(newFakeFace("fake"))}}, nil)
	if err != nil {
		t.Fatalf("Measure(%q) error = %v", text, err)
	}
	return BreakLines(glyphs, width, mode, nil, nil)
}

// TestBreakLines covers the line breaker with a face of advance 10 and
// ink width 8 (0 for spaces).
func TestBreakLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		mode  WrapMode
		want  []string
	}{
		{"word wraps before World", "Hello World", 65, WrapBreakWord, []string{"Hello ", "World"}},
		{"word fits", "Hello World", 200, WrapBreakWord, []string{"Hello World"}},
		{"long word stays whole", "Supercalifragilistic", 30, WrapBreakWord, []string{"Supercalifragilistic"}},
		{"long word after short word", "a Supercalifragilistic", 30, WrapBreakWord, []string{"a ", "Supercalifragilistic"}},
		{"hyphen breaks", "aaa-bbbb", 55, WrapBreakWord, []string{"aaa-", "bbbb"}},
		{"char wraps", "abcdefghij", 35, WrapBreakCharacter, []string{"abc", "def", "ghi", "j"}},
		{"char narrow box", "abc", 1, WrapBreakCharacter, []string{"a", "b", "c"}},
		{"none never wraps", "aaaa bbbb cccc", 10, WrapNone, []string{"aaaa bbbb cccc"}},
		{"spaces never overflow", "ab   ", 25, WrapBreakCharacter, []string{"ab   "}},
		{"empty text", "", 100, WrapBreakWord, []string{""}},
		{"trailing line feed", "A\n", 100, WrapNone, []string{"A", ""}},
		{"crlf", "A\r\nB", 100, WrapNone, []string{"A", "B"}},
		{"lone cr", "A\rB", 100, WrapNone, []string{"A", "B"}},
		{"tab skipped", "a\tb", 100, WrapNone, []string{"ab"}},
		{"unknown mode", "aaaa bbbb", 10, WrapMode(42), []string{"aaaa bbbb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lineStrings(breakText(t, tt.text, tt.width, tt.mode))
			if !slices.Equal(got, tt.want) {
				t.Errorf("BreakLines(%q, %v, %v) = %q, want %q", tt.text, tt.width, tt.mode, got, tt.want)
			}
		})
	}
}

// TestBreakLinesLineFeed checks that a line feed always splits, whatever
// the mode and width.
func TestBreakLinesLineFeed(t *testing.T) {
	for _, mode := range []WrapMode{WrapNone, WrapBreakCharacter, WrapBreakWord} {
		for _, width := range []float64{0, 5, 1000} {
			got := lineStrings(breakText(t, "A\nB", width, mode))
			if want := []string{"A", "B"}; !slices.Equal(got, want) {
				t.Errorf("mode %v width %v: lines = %q, want %q", mode, width, got, want)
			}
		}
	}
}

// TestBreakLinesWidth checks Line.Width against the glyph advances and the
// character-mode bound.
func TestBreakLinesWidth(t *testing.T) {
	const width = 47
	text := "The quick brown fox jumps over the lazy dog"

	for _, mode := range []WrapMode{WrapNone, WrapBreakCharacter, WrapBreakWord} {
		t.Run(mode.String(), func(t *testing.T) {
			lines := breakText(t, text, width, mode)

			total := 0
			for i, l := range lines {
				var sum float64
				for _, g := range l.Glyphs {
					sum += g.Metrics.Advance
				}
				if l.Width != sum {
					t.Errorf("line %d: Width = %v, want %v", i, l.Width, sum)
				}
				total += len(l.Glyphs)

				if mode != WrapBreakCharacter || len(l.Glyphs) < 2 {
					continue
				}
				last := l.Glyphs[len(l.Glyphs)-1]
				if ink := l.Width - last.Metrics.Advance + last.Metrics.Width; ink > width {
					t.Errorf("line %d %q: ink extent %v exceeds %v", i, l.String(), ink, width)
				}
			}
			if total != len([]rune(text)) {
				t.Errorf("glyph count = %d, want %d", total, len([]rune(text)))
			}
		})
	}
}

// TestBreakLinesSkipsMissing checks that unresolved runes do not reach a line.
func TestBreakLinesSkipsMissing(t *testing.T) {
	face := newFakeFace("ab")
	face.covered = "ab"

	glyphs, err := Measure([]Run{{Text: "a?b", Style: testStyle(face)}}, nil)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	if glyphs[1].Kind != GlyphMissing {
		t.Fatalf("glyph 1 kind = %v, want %v", glyphs[1].Kind, GlyphMissing)
	}

	lines := BreakLines(glyphs, 100, WrapBreakWord, nil, nil)
	if got := lineStrings(lines); !slices.Equal(got, []string{"ab"}) {
		t.Errorf("lines = %q, want [\"ab\"]", got)
	}
}

// TestBreakLinesCustomRules uses rules where only '|' separates words.
func TestBreakLinesCustomRules(t *testing.T) {
	rules := NewWordBreakRules([]rune{'|'}, nil, nil, nil, nil)
	rules.LetterOrDigit = DefaultWordBreakRules().LetterOrDigit

	glyphs, err := Measure([]Run{{Text: "ab cd|ef", Style: testStyle(newFakeFace("fake"))}}, nil)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	lines := BreakLines(glyphs, 65, WrapBreakWord, rules, nil)
	if got, want := lineStrings(lines), []string{"ab cd|", "ef"}; !slices.Equal(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
}

// TestLineBaseline tests Line.Baseline with mixed line heights.
func TestLineBaseline(t *testing.T) {
	small := &GlyphRecord{Kind: GlyphFace, Rune: 'a', LineHeight: 12}
	big := &GlyphRecord{Kind: GlyphFace, Rune: 'B', LineHeight: 30}

	l := &Line{}
	if got := l.Baseline(); got != 0 {
		t.Errorf("empty Baseline() = %v, want 0", got)
	}
	l.append(small)
	l.append(big)
	l.append(small)
	if got := l.Baseline(); got != 30 {
		t.Errorf("Baseline() = %v, want 30", got)
	}
}

// countingRules counts word break decisions.
type countingRules struct {
	rules *WordBreakRules
	calls int
}

func (c *countingRules) IsWordBreak(current, previous rune) bool {
	c.calls++
	return c.rules.IsWordBreak(current, previous)
}

// TestBreakLinesLongWord checks that a word much wider than the box stays on
// one line and costs a bounded number of break decisions per glyph.
func TestBreakLinesLongWord(t *testing.T) {
	const n = 50000
	glyphs, err := Measure([]Run{{Text: "ab " + strings.Repeat("x", n) + " cd", Style: testStyle(newFakeFace("fake"))}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rules := &countingRules{rules: DefaultWordBreakRules()}

	lines := breakLines(glyphs, 100, WrapBreakWord, rules, nil)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if got := lines[0].String(); got != "ab " {
		t.Errorf("line 0 = %q, want %q", got, "ab ")
	}
	if got := len(lines[1].Glyphs); got != n+1 {
		t.Errorf("line 1 has %d glyphs, want %d", got, n+1)
	}
	if got := lines[2].String(); got != "cd" {
		t.Errorf("line 2 = %q, want %q", got, "cd")
	}
	if rules.calls > 2*len(glyphs) {
		t.Errorf("IsWordBreak called %d times for %d glyphs", rules.calls, len(glyphs))
	}
}

// TestBreakLinesKeepsLetterRuns breaks random text and checks that no glyph
// is lost and that a line boundary never splits a letter or digit run that
// would fit in the box on its own.
func TestBreakLinesKeepsLetterRuns(t *testing.T) {
	const alphabet = "abcXY79  -,.()"
	rng := rand.New(rand.NewPCG(1, 2))
	face := newFakeFace("fake")
	rules := DefaultWordBreakRules()
	isRun := func(r rune) bool { return unicode.Is(rules.LetterOrDigit, r) }

	for i := range 2000 {
		var sb strings.Builder
		for range 1 + rng.IntN(60) {
			sb.WriteByte(alphabet[rng.IntN(len(alphabet))])
		}
		text := sb.String()
		width := float64(10 + rng.IntN(120))

		glyphs, err := Measure([]Run{{Text: text, Style: testStyle(face)}}, nil)
		if err != nil {
			t.Fatal(err)
		}
		lines := BreakLines(glyphs, width, WrapBreakWord, rules, nil)

		var flat []*GlyphRecord
		var starts []int
		for _, l := range lines {
			starts = append(starts, len(flat))
			flat = append(flat, l.Glyphs...)
		}
		if len(flat) != len(glyphs) {
			t.Fatalf("case %d %q width %v: %d glyphs in lines, want %d", i, text, width, len(flat), len(glyphs))
		}

		for _, at := range starts[1:] {
			if at == 0 || at == len(flat) || !isRun(flat[at-1].Rune) || !isRun(flat[at].Rune) {
				continue
			}
			lo, hi := at-1, at
			for lo > 0 && isRun(flat[lo-1].Rune) {
				lo--
			}
			for hi < len(flat)-1 && isRun(flat[hi+1].Rune) {
				hi++
			}
			runWidth := float64(hi-lo)*face.advance + face.ink
			if runWidth <= width {
				t.Errorf("case %d %q width %v: break inside %q which fits", i, text, width, text[lo:hi+1])
			}
		}
	}
}
