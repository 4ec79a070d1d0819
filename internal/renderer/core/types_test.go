package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	c := ColorDefault
	if !c.IsDefault() {
		t.Error("ColorDefault should be default")
	}
	if c.CSS() != "" {
		t.Errorf("reset color should serialize to empty string, got %q", c.CSS())
	}
}

func TestColorFromIndex(t *testing.T) {
	c := ColorFromIndex(42)

	if c.R != 42 {
		t.Errorf("expected index 42, got %d", c.R)
	}
	if !c.Indexed {
		t.Error("indexed color should have Indexed true")
	}
	if c.IsDefault() {
		t.Error("indexed color should not be default")
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false},
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ColorFromHex(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ColorFromHex(%q) expected error, got nil", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("ColorFromHex(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.hex, c.R, c.G, c.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorCSS(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"red", ColorRed, "#800000"},
		{"light red", ColorLightRed, "#ff0000"},
		{"cyan", ColorCyan, "#008080"},
		{"light cyan", ColorLightCyan, "#00ffff"},
		{"white", ColorWhite, "#ffffff"},
		{"cube", ColorFromIndex(196), "#ff0000"},
		{"grayscale", ColorFromIndex(232), "#080808"},
		{"rgb", ColorFromRGB(0x26, 0x32, 0x38), "#263238"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.CSS(); got != tt.want {
				t.Errorf("CSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorByName(t *testing.T) {
	c, err := ColorByName("lightblue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Equals(ColorLightBlue) {
		t.Errorf("expected LightBlue, got %s", c)
	}

	c, err = ColorByName("reset")
	if err != nil || !c.IsDefault() {
		t.Errorf("expected reset color, got %s (%v)", c, err)
	}

	c, err = ColorByName("#263238")
	if err != nil || c.CSS() != "#263238" {
		t.Errorf("expected hex color, got %s (%v)", c, err)
	}

	if _, err := ColorByName("chartreuse-ish"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestColorEquals(t *testing.T) {
	if !ColorDefault.Equals(Color{Default: true, R: 9}) {
		t.Error("reset colors should compare equal regardless of components")
	}
	if ColorRed.Equals(ColorFromRGB(128, 0, 0)) {
		t.Error("indexed and rgb colors should not compare equal")
	}
	if !ColorFromIndex(3).Equals(Color{R: 3, G: 7, Indexed: true}) {
		t.Error("indexed colors should ignore G and B")
	}
}

func TestColorString(t *testing.T) {
	if ColorRed.String() != "Red" {
		t.Errorf("expected Red, got %s", ColorRed.String())
	}
	if ColorFromIndex(100).String() != "idx(100)" {
		t.Errorf("unexpected string %s", ColorFromIndex(100).String())
	}
	if ColorDefault.String() != "Reset" {
		t.Errorf("unexpected string %s", ColorDefault.String())
	}
}

func TestColorBlend(t *testing.T) {
	got := ColorRed.Blend(ColorBlack, 0.5)
	if got.R != 64 || got.G != 0 || got.B != 0 || got.Indexed {
		t.Errorf("blend = %+v, want rgb(64,0,0)", got)
	}

	if !ColorDefault.Blend(ColorBlack, 0.5).IsDefault() {
		t.Error("blending reset should leave it unchanged")
	}
}

func TestAttributes(t *testing.T) {
	a := AttrNone.With(AttrBold).With(AttrUnderline)
	if !a.Has(AttrBold) || !a.Has(AttrUnderline) {
		t.Error("expected bold and underline")
	}
	a = a.Without(AttrBold)
	if a.Has(AttrBold) {
		t.Error("bold should be removed")
	}
}

func TestCellEquals(t *testing.T) {
	a := NewCell("x").WithFg(ColorRed)
	b := NewCell("x").WithFg(ColorRed)
	if !a.Equals(b) {
		t.Error("identical cells should be equal")
	}
	if a.Equals(b.WithAttrs(AttrBold)) {
		t.Error("cells with different attributes should differ")
	}
	if !(Cell{}).IsContinuation() {
		t.Error("zero cell should be a continuation")
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(1, 2, 3, 4)
	if r.Width() != 4 || r.Height() != 3 {
		t.Errorf("unexpected size %dx%d", r.Width(), r.Height())
	}
	if !r.Contains(2, 1) || r.Contains(6, 1) {
		t.Error("contains mismatch")
	}

	in := r.Inset(1, 1, 1, 1)
	if in.Width() != 2 || in.Height() != 1 {
		t.Errorf("unexpected inset size %dx%d", in.Width(), in.Height())
	}

	if !r.Intersection(RectFromSize(10, 10, 1, 1)).IsEmpty() {
		t.Error("disjoint rects should not intersect")
	}
	got := r.Intersection(NewScreenRect(0, 0, 2, 3))
	if got != NewScreenRect(1, 2, 2, 3) {
		t.Errorf("unexpected intersection %+v", got)
	}
}
