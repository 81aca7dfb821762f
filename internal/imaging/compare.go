package imaging

import (
	"math"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
	"github.com/ironsheep/fastbitmap/internal/pixelbuf"
)

// Size is a width and height in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CompareRegionsResult contains region comparison information
type CompareRegionsResult struct {
	SimilarityScore  float64 `json:"similarity_score"`
	PixelsDifferent  int     `json:"pixels_different"`
	TotalPixels      int     `json:"total_pixels"`
	SameSize         bool    `json:"same_size"`
	Region1Size      Size    `json:"region1_size"`
	Region2Size      Size    `json:"region2_size"`
	AverageColorDiff float64 `json:"average_color_diff"`
}

// diffThreshold is the mean per-channel difference above which two pixels
// count as different.
const diffThreshold = 10

// CompareRegions compares two regions of a bitmap pixel by pixel.
//
// Regions of different sizes are compared over their common top-left
// overlap. Alpha is ignored.
func CompareRegions(bm *bitmap.Bitmap, r1, r2 Region) (*CompareRegionsResult, error) {
	if bm == nil {
		return nil, pixelbuf.ErrNullBuffer
	}
	if err := checkRegion(bm, r1); err != nil {
		return nil, err
	}
	if err := checkRegion(bm, r2); err != nil {
		return nil, err
	}

	w1, h1 := r1.X2-r1.X1, r1.Y2-r1.Y1
	w2, h2 := r2.X2-r2.X1, r2.Y2-r2.Y1
	minW, minH := min(w1, w2), min(h1, h2)

	buf, err := pixelbuf.Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	totalPixels := minW * minH
	pixelsDifferent := 0
	var totalColorDiff float64

	for dy := 0; dy < minH; dy++ {
		for dx := 0; dx < minW; dx++ {
			a := buf.GetPixel(r1.X1+dx, r1.Y1+dy)
			b := buf.GetPixel(r2.X1+dx, r2.Y1+dy)

			diff := float64(absDiff(a.R, b.R)+absDiff(a.G, b.G)+absDiff(a.B, b.B)) / 3.0
			totalColorDiff += diff
			if diff > diffThreshold {
				pixelsDifferent++
			}
		}
	}

	similarity := 1.0 - float64(pixelsDifferent)/float64(totalPixels)
	avgColorDiff := totalColorDiff / float64(totalPixels)

	return &CompareRegionsResult{
		SimilarityScore:  math.Round(similarity*1000) / 1000,
		PixelsDifferent:  pixelsDifferent,
		TotalPixels:      totalPixels,
		SameSize:         w1 == w2 && h1 == h2,
		Region1Size:      Size{Width: w1, Height: h1},
		Region2Size:      Size{Width: w2, Height: h2},
		AverageColorDiff: math.Round(avgColorDiff*100) / 100,
	}, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
