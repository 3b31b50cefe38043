// Package color holds the colors boxes are painted with, the parser for
// LaTeX color specifications and a layered registry of named colors.
//
// Colors are [colorful.Color] values plus an alpha channel. A spec may be a
// registered name, a hex literal, an xcolor mixing expression such as
// "red!30!blue", or a value in one of the models accepted by \color[model]:
// rgb, RGB, cmyk, gray and HTML.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/texbox/pkg/errors"
)

// Color is an RGB color with alpha. The zero value is transparent black.
type Color struct {
	colorful.Color
	A float64
}

// RGB returns an opaque color from components in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: 1}
}

// Common colors used by the layout engine.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Transparent = Color{}
)

// Hex renders c as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Color) Hex() string {
	h := c.Clamped().Hex()
	if c.A >= 1 {
		return h
	}
	return fmt.Sprintf("%s%02x", h, int(clamp01(c.A)*255+0.5))
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// MarshalText encodes c as its hex form.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText decodes a hex form produced by MarshalText.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := parseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Mix blends c towards o; t=0 yields c and t=1 yields o.
func (c Color) Mix(o Color, t float64) Color {
	return Color{
		Color: c.Color.BlendRgb(o.Color, t),
		A:     c.A + (o.A-c.A)*t,
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func parseHex(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	switch len(s) {
	case 4:
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid alpha in %q", s)
		}
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid hex color %q", s)
		}
		return Color{Color: c, A: float64(a) / 255}, nil
	default:
		return Color{}, errors.New(errors.ErrCodeInvalidInput, "invalid hex color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid hex color %q", s)
	}
	return Color{Color: c, A: 1}, nil
}

// ParseModel decodes a value written in an explicit color model, as in
// \color[rgb]{0.1,0.2,0.3}.
func ParseModel(model, value string) (Color, error) {
	nums := func(n int, max float64) ([]float64, error) {
		parts := strings.Split(value, ",")
		if len(parts) != n {
			return nil, errors.New(errors.ErrCodeInvalidInput, "color model %s needs %d components, got %q", model, n, value)
		}
		out := make([]float64, n)
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s component %q", model, p)
			}
			if v < 0 || v > max {
				return nil, errors.New(errors.ErrCodeInvalidInput, "%s component %v out of range [0, %v]", model, v, max)
			}
			out[i] = v / max
		}
		return out, nil
	}

	switch model {
	case "rgb":
		v, err := nums(3, 1)
		if err != nil {
			return Color{}, err
		}
		return RGB(v[0], v[1], v[2]), nil
	case "RGB":
		v, err := nums(3, 255)
		if err != nil {
			return Color{}, err
		}
		return RGB(v[0], v[1], v[2]), nil
	case "cmyk":
		v, err := nums(4, 1)
		if err != nil {
			return Color{}, err
		}
		k := 1 - v[3]
		return RGB((1-v[0])*k, (1-v[1])*k, (1-v[2])*k), nil
	case "gray":
		v, err := nums(1, 1)
		if err != nil {
			return Color{}, err
		}
		return RGB(v[0], v[0], v[0]), nil
	case "HTML":
		return parseHex(strings.TrimSpace(value))
	case "hsb":
		v, err := nums(3, 1)
		if err != nil {
			return Color{}, err
		}
		return Color{Color: colorful.Hsv(v[0]*360, v[1], v[2]), A: 1}, nil
	}
	return Color{}, errors.New(errors.ErrCodeUnsupported, "unknown color model %q", model)
}
