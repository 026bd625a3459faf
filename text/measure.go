package text

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

// normalizeLineEndings replaces CRLF and lone CR with LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Measure resolves every rune of runs to a face and reads its raw metrics.
//
// The result is one flat sequence across all runs. Line feeds and other
// control characters become GlyphControl records without a face lookup.
// A rune that no candidate face covers is logged and replaced by the
// GlyphMissing placeholder. Errors reading metrics from a face are returned.
func Measure(runs []Run, log *slog.Logger) ([]*GlyphRecord, error) {
	log = loggerOrNop(log)

	n := 0
	for i := range runs {
		n += len(runs[i].Text)
	}
	glyphs := make([]*GlyphRecord, 0, n)

	for i := range runs {
		run := &runs[i]
		if run.Style == nil {
			return nil, fmt.Errorf("run %d: %w", i, ErrNilStyle)
		}
		for _, r := range normalizeLineEndings(run.Text) {
			g, err := measureRune(r, run.Style, log)
			if err != nil {
				return nil, err
			}
			glyphs = append(glyphs, g)
		}
	}

	return glyphs, nil
}

// measureRune measures a single rune with style.
func measureRune(r rune, style *Style, log *slog.Logger) (*GlyphRecord, error) {
	if r == '\n' || unicode.IsControl(r) {
		return controlGlyph(r), nil
	}

	face := faceForRune(style.Faces, r)
	if face == nil {
		log.Warn("text: no face for character",
			"rune", fmt.Sprintf("U+%04X", r),
			"candidates", faceNames(style.Faces))
		return missingGlyph(), nil
	}

	m, err := face.GlyphMetrics(r, style.Size)
	if err != nil {
		return nil, fmt.Errorf("text: measure U+%04X with %s: %w", r, face.Name(), err)
	}

	return &GlyphRecord{
		Kind:       GlyphFace,
		Rune:       r,
		Face:       face,
		Size:       style.Size,
		LineHeight: style.lineHeight(),
		Color:      style.Color,
		Metrics:    m,
	}, nil
}

// faceForRune returns the first face that has the glyph for the rune,
// or nil if none has it.
func faceForRune(faces []Face, r rune) Face {
	for _, face := range faces {
		if face != nil && face.HasGlyph(r) {
			return face
		}
	}
	return nil
}

// faceNames lists face names for diagnostics.
func faceNames(faces []Face) []string {
	names := make([]string, 0, len(faces))
	for _, f := range faces {
		if f == nil {
			continue
		}
		names = append(names, f.Name())
	}
	return names
}
