package pixelbuf

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"unicode"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied 8-bit ARGB color.
type Color struct {
	A, R, G, B uint8
}

// FromARGB returns the color with the given channels.
func FromARGB(a, r, g, b uint8) Color {
	return Color{A: a, R: r, G: g, B: b}
}

// FromRGB returns an opaque color.
func FromRGB(r, g, b uint8) Color {
	return Color{A: 0xff, R: r, G: g, B: b}
}

// Gray returns the opaque gray color with R=G=B=v.
func Gray(v uint8) Color {
	return Color{A: 0xff, R: v, G: v, B: v}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color as "#RRGGBB" (alpha excluded).
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HSL returns hue in degrees (0-360) and saturation and lightness (0-1).
func (c Color) HSL() (h, s, l float64) {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
}

func (c Color) String() string {
	return fmt.Sprintf("Color(A=%d,R=%d,G=%d,B=%d)", c.A, c.R, c.G, c.B)
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{A: n.A, R: n.R, G: n.G, B: n.B}
}

// ParseHex parses "#RGB", "#RRGGBB" or "#RRGGBBAA". Colors without an alpha
// suffix are opaque.
func ParseHex(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("invalid color %q: missing leading #", s)
	}
	switch len(s) {
	case 4, 7, 9:
	default:
		return Color{}, fmt.Errorf("invalid color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	if i := strings.IndexFunc(s[1:], isNotHexDigit); i >= 0 {
		return Color{}, fmt.Errorf("invalid color %q: %q is not a hex digit", s, s[1+i])
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return Color{A: alpha, R: r, G: g, B: b}, nil
}

func isNotHexDigit(r rune) bool {
	return !unicode.Is(unicode.ASCII_Hex_Digit, r)
}
