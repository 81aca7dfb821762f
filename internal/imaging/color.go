package imaging

import (
	"fmt"
	"sort"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
	"github.com/ironsheep/fastbitmap/internal/pixelbuf"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// NewColorResult describes c in every supported representation.
func NewColorResult(c pixelbuf.Color) ColorResult {
	h, s, l := c.HSL()
	return ColorResult{
		Hex:  c.Hex(),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// SampleColor reads the color at a specific pixel coordinate.
//
// Unlike the pixel buffer itself, SampleColor validates the coordinates and
// returns an error for points outside the bitmap. The bitmap is locked
// read-only for the duration of the call, so it must not be locked elsewhere.
//
// Reads follow the pixel buffer's depth rules: 8 bpp bitmaps report gray
// with R=G=B, and 8 and 24 bpp bitmaps report full opacity.
func SampleColor(bm *bitmap.Bitmap, x, y int) (*ColorResult, error) {
	results, err := SampleColorsMulti(bm, []LabeledPoint{{X: x, Y: y}})
	if err != nil {
		return nil, err
	}
	return &results.Samples[0].Color, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"` // Optional label (empty if not provided)
	X     int         `json:"x"`               // X coordinate that was sampled
	Y     int         `json:"y"`               // Y coordinate that was sampled
	Color ColorResult `json:"color"`           // The color at this location
}

// MultiColorResult contains color samples from multiple points.
//
// Results are returned in the same order as the input points.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"` // Color samples in input order
}

// SampleColorsMulti reads colors at multiple pixel coordinates under a single lock.
//
// All points are validated before the bitmap is locked. On error, no partial
// results are returned.
func SampleColorsMulti(bm *bitmap.Bitmap, points []LabeledPoint) (*MultiColorResult, error) {
	if bm == nil {
		return nil, pixelbuf.ErrNullBuffer
	}
	for _, p := range points {
		if err := CheckBounds(bm, p.X, p.Y); err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
	}

	buf, err := pixelbuf.Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	results := make([]LabeledColorResult, 0, len(points))
	for _, p := range points {
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: NewColorResult(buf.GetPixel(p.X, p.Y)),
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// CheckBounds returns an error if (x, y) lies outside the bitmap.
func CheckBounds(bm *bitmap.Bitmap, x, y int) error {
	if x < 0 || y < 0 || x >= bm.Width() || y >= bm.Height() {
		return fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bm.Width(), bm.Height())
	}
	return nil
}

// Region represents a rectangular region within an image.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive).
type Region struct {
	X1 int // Left edge X coordinate (inclusive)
	Y1 int // Top edge Y coordinate (inclusive)
	X2 int // Right edge X coordinate (exclusive)
	Y2 int // Bottom edge Y coordinate (exclusive)
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors in an image.
//
// Colors are sorted by frequency in descending order (most common first).
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"` // Colors sorted by frequency (descending)
}

// DominantColors returns the count most common colors of a bitmap or region.
//
// The whole bitmap is traversed once through a read-only pixel buffer. Each
// RGB component is quantized to a multiple of 16 so that near-identical colors
// are grouped together, e.g. #F0F0F0 and #FAFAFA both count as #F0F0F0. Ties
// are broken by hex value so results are deterministic.
func DominantColors(bm *bitmap.Bitmap, count int, region *Region) (*DominantColorsResult, error) {
	if bm == nil {
		return nil, pixelbuf.ErrNullBuffer
	}
	if region != nil {
		if err := checkRegion(bm, *region); err != nil {
			return nil, err
		}
	}

	buf, err := pixelbuf.Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	counts := make(map[RGBColor]int)
	total := 0
	buf.ForEachPixel(func(x, y int, c pixelbuf.Color) {
		if region != nil && (x < region.X1 || x >= region.X2 || y < region.Y1 || y >= region.Y2) {
			return
		}
		counts[RGBColor{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16}]++
		total++
	})

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        pixelbuf.FromRGB(rgb.R, rgb.G, rgb.B).Hex(),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        rgb,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}
