package sanitizer

import (
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+972541234567",
			want:  "+972541234567",
		},
		{
			name:  "with spaces",
			input: "+972 54 123 4567",
			want:  "+972541234567",
		},
		{
			name:  "with dashes",
			input: "+972-54-123-4567",
			want:  "+972541234567",
		},
		{
			name:  "with parentheses",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "national number uses default region",
			input: "(212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +972541234567  ",
			want:  "+972541234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "not a phone number is kept",
			input: " call the front desk ",
			want:  "call the front desk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"+1 (212) 555-1234", "(212) 555-1234", "garbage"}
	for _, in := range inputs {
		once := NormalizePhone(in)
		if twice := NormalizePhone(once); twice != once {
			t.Errorf("NormalizePhone not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Ada Lovelace  ", "Ada Lovelace"},
		{"multiple spaces between words", "Ada    Lovelace", "Ada Lovelace"},
		{"tabs and newlines", "Ada\t\nLovelace", "Ada Lovelace"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Zoë O'Brien-Smith ", "Zoë O'Brien-Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeName_ExtremelyLongInput(t *testing.T) {
	input := strings.Repeat("a ", 5000)
	got := NormalizeName(input)
	if len(got) != 9999 {
		t.Errorf("expected length 9999, got %d", len(got))
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Guest@Example.COM "); got != "guest@example.com" {
		t.Errorf("NormalizeEmail() = %q, want %q", got, "guest@example.com")
	}
}

func TestNormalizeOptional(t *testing.T) {
	if got := NormalizeOptional(nil, NormalizePhone); got != nil {
		t.Errorf("expected nil for nil input, got %q", *got)
	}

	blank := "   "
	if got := NormalizeOptional(&blank, NormalizePhone); got != nil {
		t.Errorf("expected nil for blank input, got %q", *got)
	}

	phone := "(212) 555-1234"
	got := NormalizeOptional(&phone, NormalizePhone)
	if got == nil || *got != "+12125551234" {
		t.Errorf("expected +12125551234, got %v", got)
	}
	if phone != "(212) 555-1234" {
		t.Errorf("input must not be modified, got %q", phone)
	}
}
