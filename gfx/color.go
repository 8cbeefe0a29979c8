package gfx

import (
	"fmt"
	"strconv"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA color with float32 channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Predefined colors.
var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Transparent = Color{}
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// ParseHexColor parses the "#RRGGBB" and "#RRGGBBAA" notations.
func ParseHexColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return Color{}, fmt.Errorf("malformed hex color %q", s)
	}
	channel := func(hex string) (float32, error) {
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("malformed hex color %q: %s", s, err.Error())
		}
		return float32(v) / 255, nil
	}
	var (
		c   Color
		err error
	)
	c.A = 1
	if c.R, err = channel(s[1:3]); err != nil {
		return Color{}, err
	}
	if c.G, err = channel(s[3:5]); err != nil {
		return Color{}, err
	}
	if c.B, err = channel(s[5:7]); err != nil {
		return Color{}, err
	}
	if len(s) == 9 {
		if c.A, err = channel(s[7:9]); err != nil {
			return Color{}, err
		}
	}
	return c, nil
}

// Vec4 returns the color as a vector in RGBA order.
func (c Color) Vec4() glm.Vec4 {
	return glm.Vec4{c.R, c.G, c.B, c.A}
}

// Hex formats the color in the notation ParseHexColor accepts. Opaque
// colors use the six digit form.
func (c Color) Hex() string {
	channel := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	if c.A >= 1 {
		return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}
