package gfx_test

import (
	"testing"

	"github.com/algonents/wilhelm-renderer/gfx"
)

func TestParseHexColor(t *testing.T) {
	c, err := gfx.ParseHexColor("#FF8000")
	if err != nil {
		t.Fatalf("parse failed: %s", err.Error())
	}
	if c.A != 1 {
		t.Error("six digit notation should be opaque")
	}
	if c.R != 1 || c.B != 0 {
		t.Errorf("wrong channel order: %+v", c)
	}
	if c.G < 0.5 || c.G > 0.51 {
		t.Errorf("expected mid green, got %f", c.G)
	}

	c, err = gfx.ParseHexColor("#00000080")
	if err != nil {
		t.Fatalf("parse failed: %s", err.Error())
	}
	if c.A < 0.5 || c.A > 0.51 {
		t.Errorf("expected half alpha, got %f", c.A)
	}
}

func TestParseHexColorRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "FF8000", "#F80", "#GGGGGG", "#FF80001"} {
		if _, err := gfx.ParseHexColor(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestColorVec4(t *testing.T) {
	v := gfx.RGBA(0.25, 0.5, 0.75, 0.5).Vec4()
	if v.X() != 0.25 || v.Y() != 0.5 || v.Z() != 0.75 || v.W() != 0.5 {
		t.Errorf("unexpected vector %v", v)
	}
}
