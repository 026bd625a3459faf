package text

import "testing"

func TestWrapModeString(t *testing.T) {
	tests := []struct {
		mode WrapMode
		want string
	}{
		{WrapNone, "None"},
		{WrapBreakCharacter, "BreakCharacter"},
		{WrapBreakWord, "BreakWord"},
		{WrapMode(99), unknownStr},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.mode.String()
			if got != tt.want {
				t.Errorf("WrapMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseWrapMode(t *testing.T) {
	tests := []struct {
		in      string
		want    WrapMode
		wantErr bool
	}{
		{"", WrapNone, false},
		{"none", WrapNone, false},
		{"None", WrapNone, false},
		{"char", WrapBreakCharacter, false},
		{"BreakCharacter", WrapBreakCharacter, false},
		{"word", WrapBreakWord, false},
		{" BreakWord ", WrapBreakWord, false},
		{"hyphenate", WrapNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWrapMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWrapMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseWrapMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHintingString(t *testing.T) {
	tests := []struct {
		h    Hinting
		want string
	}{
		{HintingNone, "None"},
		{HintingVertical, "Vertical"},
		{HintingFull, "Full"},
		{Hinting(42), unknownStr},
	}

	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("Hinting(%d).String() = %q, want %q", tt.h, got, tt.want)
		}
	}
}
