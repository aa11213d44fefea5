package colour

import (
	"errors"
	"testing"
)

func TestResolveNamedColours(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"red", "#eb3c25"},
		{"RED", "#eb3c25"},
		{"black", "#222222"},
		{"darkRed", "#8e2c13"},
		{"darkred", "#8e2c13"},
		{"DARKVIOLET", "#5c22b4"},
		{"darkGreen", "#33741f"},
		{"darkOrange", "#d17b2c"},
		{" pink ", "#d081f8"},
	}

	for _, tt := range tests {
		got, err := Resolve(tt.input)
		if err != nil {
			t.Errorf("Resolve(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Resolve(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestResolveHex(t *testing.T) {
	got, err := Resolve("#ABCDEF")
	if err != nil {
		t.Fatalf("Expected #ABCDEF to be accepted, got %v", err)
	}
	if got != "#abcdef" {
		t.Errorf("Expected lower-cased hex, got %q", got)
	}

	if _, err := Resolve("#123456"); err != nil {
		t.Errorf("Expected #123456 to be accepted, got %v", err)
	}
}

func TestResolveRejectsInvalid(t *testing.T) {
	invalid := []string{
		"notacolour",
		"",
		"#12345",
		"#1234567",
		"123456",
		"#ggghhh",
		"xx#abcdef",
		"color",
	}

	for _, input := range invalid {
		_, err := Resolve(input)
		if err == nil {
			t.Errorf("Resolve(%q) expected error", input)
			continue
		}
		if !errors.Is(err, ErrInvalidColour) {
			t.Errorf("Resolve(%q) error should wrap ErrInvalidColour, got %v", input, err)
		}
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	if len(p) != 16 {
		t.Fatalf("Expected 16 named colours, got %d", len(p))
	}
	if p[0].Name != "white" || p[15].Name != "pink" {
		t.Errorf("Unexpected palette order: first=%s last=%s", p[0].Name, p[15].Name)
	}

	// Mutating the copy must not affect resolution
	p[0].Hex = "#000000"
	if got, _ := Resolve("white"); got != "#ffffff" {
		t.Errorf("Palette copy leaked into resolver: %s", got)
	}

	for _, c := range Palette() {
		if !IsValid(c.Hex) {
			t.Errorf("Palette entry %s has invalid hex %s", c.Name, c.Hex)
		}
	}
}
