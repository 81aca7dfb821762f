package imaging

import (
	"fmt"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
	"github.com/ironsheep/fastbitmap/internal/pixelbuf"
)

// SetResult reports the value stored by SetPixel, which depends on the
// bitmap's depth.
type SetResult struct {
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Depth  int         `json:"depth"`
	Stored ColorResult `json:"stored"`
}

// SetPixel writes c at (x, y) and reads the stored value back.
//
// 24 bpp bitmaps drop the alpha component and 8 bpp bitmaps keep only the
// blue component, so Stored can differ from c.
func SetPixel(bm *bitmap.Bitmap, x, y int, c pixelbuf.Color) (*SetResult, error) {
	return SetPixelMode(bm, x, y, c, bitmap.ReadWrite)
}

// SetPixelMode is SetPixel with an explicit lock mode. A WriteOnly lock
// starts from zeroed pixels, so every other pixel of bm is cleared.
func SetPixelMode(bm *bitmap.Bitmap, x, y int, c pixelbuf.Color, mode bitmap.LockMode) (*SetResult, error) {
	if bm == nil {
		return nil, pixelbuf.ErrNullBuffer
	}
	if mode == bitmap.ReadOnly {
		return nil, fmt.Errorf("cannot set a pixel under a %s lock", mode)
	}
	if err := CheckBounds(bm, x, y); err != nil {
		return nil, err
	}

	buf, err := pixelbuf.Wrap(bm, mode)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	buf.SetPixel(x, y, c)
	stored := buf.GetPixel(x, y)
	if err := buf.Release(); err != nil {
		return nil, err
	}

	return &SetResult{X: x, Y: y, Depth: buf.Depth(), Stored: NewColorResult(stored)}, nil
}

// InvertResult summarizes an Invert call.
type InvertResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Pixels int `json:"pixels"`
	Depth  int `json:"depth"`
}

// InvertColor returns c with its color channels inverted and alpha kept.
func InvertColor(_, _ int, c pixelbuf.Color) pixelbuf.Color {
	return pixelbuf.FromARGB(c.A, 255-c.R, 255-c.G, 255-c.B)
}

// Invert inverts every pixel of bm in place.
func Invert(bm *bitmap.Bitmap) (*InvertResult, error) {
	buf, err := pixelbuf.Wrap(bm, bitmap.ReadWrite)
	if err != nil {
		return nil, err
	}
	defer buf.Release()

	buf.TransformPixels(InvertColor)
	if err := buf.Release(); err != nil {
		return nil, err
	}

	return &InvertResult{
		Width:  buf.Width(),
		Height: buf.Height(),
		Pixels: buf.Width() * buf.Height(),
		Depth:  buf.Depth(),
	}, nil
}

// SaveBitmap encodes bm to path. The format follows the file extension.
func SaveBitmap(bm *bitmap.Bitmap, path string) error {
	buf, err := pixelbuf.Wrap(bm, bitmap.ReadOnly)
	if err != nil {
		return err
	}
	defer buf.Release()

	return buf.Save(path)
}
