package imaging

import (
	"fmt"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
	"github.com/ironsheep/fastbitmap/internal/pixelbuf"
)

// checkRegion returns an error unless r is non-empty and lies inside bm.
func checkRegion(bm *bitmap.Bitmap, r Region) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > bm.Width() || r.Y2 > bm.Height() {
		return fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			r.X1, r.Y1, r.X2, r.Y2, bm.Width(), bm.Height())
	}
	return nil
}

// QuadrantRegion returns the region of a width x height image named by name.
//
// Supported names: top-left, top-right, bottom-left, bottom-right, top-half,
// bottom-half, left-half, right-half and center (the middle 50%).
func QuadrantRegion(width, height int, name string) (Region, error) {
	midX := width / 2
	midY := height / 2

	switch name {
	case "top-left":
		return Region{0, 0, midX, midY}, nil
	case "top-right":
		return Region{midX, 0, width, midY}, nil
	case "bottom-left":
		return Region{0, midY, midX, height}, nil
	case "bottom-right":
		return Region{midX, midY, width, height}, nil
	case "top-half":
		return Region{0, 0, width, midY}, nil
	case "bottom-half":
		return Region{0, midY, width, height}, nil
	case "left-half":
		return Region{0, 0, midX, height}, nil
	case "right-half":
		return Region{midX, 0, width, height}, nil
	case "center":
		qW, qH := width/4, height/4
		return Region{qW, qH, width - qW, height - qH}, nil
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}
}

// Crop copies a region of bm into a new 32 bpp bitmap.
//
// The source is read through a read-only pixel buffer and the destination is
// filled through a write-only one, so 8 and 24 bpp sources come out opaque.
func Crop(bm *bitmap.Bitmap, r Region) (*bitmap.Bitmap, error) {
	if bm == nil {
		return nil, pixelbuf.ErrNullBuffer
	}
	if err := checkRegion(bm, r); err != nil {
		return nil, err
	}

	src, err := pixelbuf.Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer src.Release()

	dst, err := pixelbuf.Create(r.X2-r.X1, r.Y2-r.Y1, bitmap.WriteOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to create crop target: %w", err)
	}
	defer dst.Release()

	dst.TransformPixels(func(x, y int, _ pixelbuf.Color) pixelbuf.Color {
		return src.GetPixel(r.X1+x, r.Y1+y)
	})

	if err := dst.Release(); err != nil {
		return nil, err
	}
	return dst.Bitmap(), nil
}
