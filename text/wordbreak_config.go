package text

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
	"gopkg.in/yaml.v3"
)

// wordBreakFile is the YAML form of WordBreakRules.
//
// Every list entry is one of:
//   - a Unicode table name ("Lu", "Nd", "Latin", "White_Space") or `\p{L}`,
//   - a range "a-z" of exactly three runes,
//   - any other string, contributing each of its runes.
type wordBreakFile struct {
	BreakAfter    []string `yaml:"break_after"`
	BreakBefore   []string `yaml:"break_before"`
	NoBreakAfter  []string `yaml:"no_break_after"`
	NoBreakBefore []string `yaml:"no_break_before"`
	LetterOrDigit []string `yaml:"letter_or_digit"`
}

// LoadWordBreakRules reads word-break rules from YAML.
//
// Example:
//
//	break_after: [" ", "-", "/"]
//	no_break_after: ["(", "["]
//	no_break_before: [")", "]", ",", "."]
//	letter_or_digit: ["Latin", "Nd"]
func LoadWordBreakRules(r io.Reader) (*WordBreakRules, error) {
	var f wordBreakFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("text: decode word-break rules: %w", err)
	}

	var (
		rules WordBreakRules
		err   error
	)
	fields := []struct {
		name    string
		entries []string
		dst     **unicode.RangeTable
	}{
		{"break_after", f.BreakAfter, &rules.BreakAfter},
		{"break_before", f.BreakBefore, &rules.BreakBefore},
		{"no_break_after", f.NoBreakAfter, &rules.NoBreakAfter},
		{"no_break_before", f.NoBreakBefore, &rules.NoBreakBefore},
		{"letter_or_digit", f.LetterOrDigit, &rules.LetterOrDigit},
	}
	for _, fd := range fields {
		if *fd.dst, err = parseRuneSet(fd.entries); err != nil {
			return nil, fmt.Errorf("text: word-break rules %s: %w", fd.name, err)
		}
	}
	return &rules, nil
}

// LoadWordBreakRulesFile reads word-break rules from a YAML file.
func LoadWordBreakRulesFile(path string) (*WordBreakRules, error) {
	// #nosec G304 -- rule file path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("text: open word-break rules: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadWordBreakRules(f)
}

// parseRuneSet merges list entries into one range table.
func parseRuneSet(entries []string) (*unicode.RangeTable, error) {
	tables := make([]*unicode.RangeTable, 0, len(entries))
	for _, e := range entries {
		if e == "" {
			continue
		}
		if t := lookupUnicodeTable(e); t != nil {
			tables = append(tables, t)
			continue
		}
		if strings.HasPrefix(e, `\p{`) {
			return nil, fmt.Errorf("unknown Unicode table %q", e)
		}
		runes := []rune(e)
		if len(runes) == 3 && runes[1] == '-' {
			lo, hi := runes[0], runes[2]
			if lo > hi {
				return nil, fmt.Errorf("invalid range %q", e)
			}
			span := make([]rune, 0, hi-lo+1)
			for r := lo; r <= hi; r++ {
				span = append(span, r)
			}
			tables = append(tables, rangetable.New(span...))
			continue
		}
		tables = append(tables, rangetable.New(runes...))
	}
	if len(tables) == 0 {
		return rangetable.New(), nil
	}
	return rangetable.Merge(tables...), nil
}

// lookupUnicodeTable finds a category, script or property table by name.
// Bare names need at least two characters; `\p{L}` selects any table,
// including one-letter categories.
func lookupUnicodeTable(name string) *unicode.RangeTable {
	if inner, ok := strings.CutPrefix(name, `\p{`); ok && strings.HasSuffix(inner, "}") {
		name = strings.TrimSuffix(inner, "}")
	} else if len([]rune(name)) < 2 {
		return nil
	}
	if t, ok := unicode.Categories[name]; ok {
		return t
	}
	if t, ok := unicode.Scripts[name]; ok {
		return t
	}
	if t, ok := unicode.Properties[name]; ok {
		return t
	}
	return nil
}
