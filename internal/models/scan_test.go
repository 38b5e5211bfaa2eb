package models

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateJobDescription(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRunes int
	}{
		{"short text unchanged", "remote-first role", 17},
		{"exactly at limit", strings.Repeat("a", MaxStoredJobDescription), MaxStoredJobDescription},
		{"ascii over limit", strings.Repeat("a", MaxStoredJobDescription+500), MaxStoredJobDescription},
		{"multi-byte over limit", strings.Repeat("é", MaxStoredJobDescription+1), MaxStoredJobDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateJobDescription(tt.input)
			if n := utf8.RuneCountInString(got); n != tt.wantRunes {
				t.Errorf("Expected %d runes, got %d", tt.wantRunes, n)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncated text is not valid UTF-8")
			}
			if !strings.HasPrefix(tt.input, got) {
				t.Errorf("Truncated text is not a prefix of the input")
			}
		})
	}
}

func TestTruncateJobDescription_RuneAtByteBoundary(t *testing.T) {
	// 1999 single-byte chars plus one two-byte char: 2001 bytes but only
	// 2000 characters, so nothing may be cut and no rune may be split.
	input := strings.Repeat("a", MaxStoredJobDescription-1) + "é"

	got := TruncateJobDescription(input)
	if got != input {
		t.Errorf("Text within the character limit was truncated")
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncated text is not valid UTF-8")
	}
}
