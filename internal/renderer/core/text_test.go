package core

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGraphemes(t *testing.T) {
	tests := []struct {
		input string
		want  []Grapheme
	}{
		{"ab", []Grapheme{{"a", 1}, {"b", 1}}},
		{"a界b", []Grapheme{{"a", 1}, {"界", 2}, {"b", 1}}},
		{"éx", []Grapheme{{"é", 1}, {"x", 1}}},
		{"a\tb", []Grapheme{{"a", 1}, {"b", 1}}},
		{"", nil},
	}

	for _, tt := range tests {
		got := Graphemes(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("Graphemes(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Graphemes(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestStringWidth(t *testing.T) {
	if w := StringWidth("héllo"); w != 5 {
		t.Errorf("expected 5, got %d", w)
	}
	if w := StringWidth("日本"); w != 4 {
		t.Errorf("expected 4, got %d", w)
	}
}

func TestTcellRoundTrip(t *testing.T) {
	colors := []Color{ColorDefault, ColorRed, ColorFromIndex(200), ColorFromRGB(1, 2, 3)}
	for _, c := range colors {
		got := ColorFromTcell(c.ToTcell())
		if !got.Equals(c) {
			t.Errorf("round trip of %s gave %s", c, got)
		}
	}
	if ColorRed.ToTcell() != tcell.ColorMaroon {
		t.Error("palette index 1 should be maroon")
	}
}
