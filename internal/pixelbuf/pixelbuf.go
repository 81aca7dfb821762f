package pixelbuf

import (
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/fastbitmap/internal/bitmap"
)

// PixelBuffer gives direct access to the locked pixel memory of a bitmap.
type PixelBuffer struct {
	bm       *bitmap.Bitmap
	data     *bitmap.BitmapData
	pix      []byte
	width    int
	height   int
	depth    int
	count    int // bytes per pixel
	released bool
}

// Create allocates a new 32 bpp bitmap of the given size and locks it.
func Create(width, height int, mode bitmap.LockMode) (*PixelBuffer, error) {
	bm, err := bitmap.New(width, height, bitmap.Format32bppARGB)
	if err != nil {
		return nil, fmt.Errorf("failed to create bitmap: %w", err)
	}
	return Wrap(bm, mode)
}

// Wrap locks an existing bitmap for direct access. The bitmap must not be
// used through any other path until the buffer is released.
//
// Returns *UnsupportedDepthError, without locking, when the bitmap's depth is
// not 8, 24 or 32 bits per pixel.
func Wrap(bm *bitmap.Bitmap, mode bitmap.LockMode) (*PixelBuffer, error) {
	if bm == nil {
		return nil, ErrNullBuffer
	}

	depth := bm.Format().BitsPerPixel()
	if depth != 8 && depth != 24 && depth != 32 {
		return nil, &UnsupportedDepthError{Depth: depth}
	}

	data, err := bm.LockBits(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to lock bitmap: %w", err)
	}

	return &PixelBuffer{
		bm:     bm,
		data:   data,
		pix:    data.Pix,
		width:  bm.Width(),
		height: bm.Height(),
		depth:  depth,
		count:  depth / 8,
	}, nil
}

// Release unlocks the bitmap. Only the first call has an effect; later calls
// return nil.
//
// An unlock error means the bitmap no longer holds this buffer's lock, for
// example because its BitmapData was unlocked directly. The buffer is still
// marked released; there is no lock left for a retry to free.
func (b *PixelBuffer) Release() error {
	if b.released {
		return nil
	}
	b.released = true
	b.pix = nil
	if b.bm == nil {
		return nil
	}
	if err := b.bm.UnlockBits(b.data); err != nil {
		return fmt.Errorf("failed to unlock bitmap: %w", err)
	}
	return nil
}

// Width returns the width in pixels, or 0 without a bitmap.
func (b *PixelBuffer) Width() int {
	if b.bm == nil {
		return 0
	}
	return b.width
}

// Height returns the height in pixels, or 0 without a bitmap.
func (b *PixelBuffer) Height() int {
	if b.bm == nil {
		return 0
	}
	return b.height
}

// Depth returns the bits per pixel: 8, 24 or 32.
func (b *PixelBuffer) Depth() int { return b.depth }

// Bitmap returns the underlying bitmap.
func (b *PixelBuffer) Bitmap() *bitmap.Bitmap { return b.bm }

// Locked reports whether the buffer still holds its lock.
func (b *PixelBuffer) Locked() bool { return b.bm != nil && !b.released }

// GetPixel returns the color at (x, y). Coordinates are not checked.
func (b *PixelBuffer) GetPixel(x, y int) Color {
	p := b.pix
	i := ((y * b.width) + x) * b.count

	switch b.depth {
	case 32:
		return Color{A: p[i+3], R: p[i+2], G: p[i+1], B: p[i]}
	case 24:
		return Color{A: 0xff, R: p[i+2], G: p[i+1], B: p[i]}
	case 8:
		return Gray(p[i])
	}
	return Color{}
}

// SetPixel writes c at (x, y). Coordinates are not checked.
//
// 24 bpp buffers drop alpha. 8 bpp buffers store only c.B; pass a gray color.
func (b *PixelBuffer) SetPixel(x, y int, c Color) {
	p := b.pix
	i := ((y * b.width) + x) * b.count

	switch b.depth {
	case 32:
		p[i] = c.B
		p[i+1] = c.G
		p[i+2] = c.R
		p[i+3] = c.A
	case 24:
		p[i] = c.B
		p[i+1] = c.G
		p[i+2] = c.R
	case 8:
		p[i] = c.B
	}
}

// ForEachPixel calls visit for every pixel, x in the outer loop and y in the
// inner loop.
func (b *PixelBuffer) ForEachPixel(visit func(x, y int, c Color)) {
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			visit(x, y, b.GetPixel(x, y))
		}
	}
}

// TransformPixels replaces every pixel with fn's result, in the same order as
// ForEachPixel. Each result is written before the next pixel is read.
func (b *PixelBuffer) TransformPixels(fn func(x, y int, c Color) Color) {
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			b.SetPixel(x, y, fn(x, y, b.GetPixel(x, y)))
		}
	}
}

// Clone copies the current pixels into a new 32 bpp bitmap and returns a
// read-write buffer locked on it. The clone shares no memory with b.
func (b *PixelBuffer) Clone() (*PixelBuffer, error) {
	if b.bm == nil || b.pix == nil {
		return nil, ErrNullBuffer
	}

	out, err := Create(b.width, b.height, bitmap.ReadWrite)
	if err != nil {
		return nil, err
	}
	b.ForEachPixel(func(x, y int, c Color) {
		out.SetPixel(x, y, c)
	})
	return out, nil
}

// Save encodes the bitmap to path, choosing the format from the file
// extension. Pending writes of a live writable buffer are flushed first.
func (b *PixelBuffer) Save(path string, opts ...imaging.EncodeOption) error {
	if b.bm == nil {
		return ErrNullBuffer
	}
	if b.Locked() {
		if err := b.bm.Flush(b.data); err != nil {
			return fmt.Errorf("failed to flush bitmap: %w", err)
		}
	}
	if err := imaging.Save(b.bm, path, opts...); err != nil {
		return fmt.Errorf("failed to save bitmap: %w", err)
	}
	return nil
}
