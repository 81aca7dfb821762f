package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrAlreadyLocked is returned by LockBits while another lock is outstanding.
	ErrAlreadyLocked = errors.New("bitmap region is already locked")
	// ErrNotLocked is returned when unlocking with a lock this bitmap did not hand out.
	ErrNotLocked = errors.New("bitmap is not locked by this handle")
	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("bitmap dimensions must be positive")
	// ErrInvalidFormat is returned for an undefined pixel format or a bad palette.
	ErrInvalidFormat = errors.New("invalid pixel format")
	// ErrInvalidLockMode is returned for a lock mode outside ReadOnly, WriteOnly and ReadWrite.
	ErrInvalidLockMode = errors.New("invalid lock mode")
)

// Bitmap is a pixel grid stored in its native pixel format.
type Bitmap struct {
	pix     []byte
	width   int
	height  int
	stride  int
	format  PixelFormat
	palette color.Palette
	lock    *BitmapData
}

// BitmapData is the handle returned by LockBits.
//
// Pix is the working copy of the locked pixel rows; the pixel at (x, y) of a
// byte-aligned format starts at Pix[y*Stride + x*BitsPerPixel/8]. Pix is set
// to nil when the lock is released.
type BitmapData struct {
	Width  int
	Height int
	Stride int
	Format PixelFormat
	Mode   LockMode
	Pix    []byte

	owner *Bitmap
}

// New allocates a zeroed bitmap. Indexed formats get a default gray palette.
func New(width, height int, format PixelFormat) (*Bitmap, error) {
	var pal color.Palette
	if format.Indexed() {
		pal = grayPalette(1 << format.BitsPerPixel())
	}
	return NewWithPalette(width, height, format, pal)
}

// NewWithPalette allocates a zeroed bitmap using pal for indexed formats.
// The palette is ignored for direct color formats.
func NewWithPalette(width, height int, format PixelFormat, pal color.Palette) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if !format.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}
	if format.Indexed() {
		if len(pal) == 0 || len(pal) > 1<<format.BitsPerPixel() {
			return nil, fmt.Errorf("%w: %d palette entries for %v", ErrInvalidFormat, len(pal), format)
		}
	} else {
		pal = nil
	}

	stride := (width*format.BitsPerPixel() + 7) / 8
	return &Bitmap{
		pix:     make([]byte, stride*height),
		width:   width,
		height:  height,
		stride:  stride,
		format:  format,
		palette: pal,
	}, nil
}

func grayPalette(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range pal {
		v := uint8(i * 255 / (n - 1))
		pal[i] = color.Gray{Y: v}
	}
	return pal
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Stride returns the number of bytes between vertically adjacent pixels.
func (b *Bitmap) Stride() int { return b.stride }

// Format returns the native pixel format.
func (b *Bitmap) Format() PixelFormat { return b.format }

// Palette returns the palette of an indexed bitmap, or nil.
func (b *Bitmap) Palette() color.Palette { return b.palette }

// Locked reports whether a lock is outstanding.
func (b *Bitmap) Locked() bool { return b.lock != nil }

// LockBits locks the full rectangle of the bitmap for direct memory access.
func (b *Bitmap) LockBits(mode LockMode) (*BitmapData, error) {
	if !mode.readable() && !mode.writable() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLockMode, mode)
	}
	if b.lock != nil {
		return nil, ErrAlreadyLocked
	}

	data := &BitmapData{
		Width:  b.width,
		Height: b.height,
		Stride: b.stride,
		Format: b.format,
		Mode:   mode,
		Pix:    make([]byte, len(b.pix)),
		owner:  b,
	}
	if mode.readable() {
		copy(data.Pix, b.pix)
	}
	b.lock = data
	return data, nil
}

// Flush commits a writable lock's working copy without releasing the lock.
// It is a no-op for ReadOnly locks.
func (b *Bitmap) Flush(data *BitmapData) error {
	if data == nil || data.owner != b || b.lock != data {
		return ErrNotLocked
	}
	if data.Mode.writable() {
		copy(b.pix, data.Pix)
	}
	return nil
}

// UnlockBits releases a lock obtained from LockBits, committing the working
// copy for writable modes. The handle is unusable afterwards.
func (b *Bitmap) UnlockBits(data *BitmapData) error {
	if err := b.Flush(data); err != nil {
		return err
	}
	b.lock = nil
	data.Pix = nil
	data.owner = nil
	return nil
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	switch b.format {
	case Format8bppGray:
		return color.GrayModel
	case Format16bppGray:
		return color.Gray16Model
	case Format24bppRGB:
		return color.RGBAModel
	case Format1bppIndexed, Format4bppIndexed:
		return b.palette
	}
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At implements image.Image. It reads the committed pixel data, so writes
// made through an outstanding lock are not visible until it is flushed or
// released.
func (b *Bitmap) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.NRGBA{}
	}

	row := b.pix[y*b.stride : (y+1)*b.stride]
	switch b.format {
	case Format8bppGray:
		return color.Gray{Y: row[x]}
	case Format16bppGray:
		return color.Gray16{Y: uint16(row[2*x])<<8 | uint16(row[2*x+1])}
	case Format24bppRGB:
		s := row[3*x : 3*x+3 : 3*x+3]
		return color.RGBA{R: s[2], G: s[1], B: s[0], A: 0xff}
	case Format32bppARGB:
		s := row[4*x : 4*x+4 : 4*x+4]
		return color.NRGBA{R: s[2], G: s[1], B: s[0], A: s[3]}
	case Format1bppIndexed, Format4bppIndexed:
		idx := int(b.ColorIndexAt(x, y))
		if idx >= len(b.palette) {
			return color.NRGBA{}
		}
		return b.palette[idx]
	}
	return color.NRGBA{}
}

// ColorIndexAt implements image.PalettedImage. It returns 0 for direct
// color formats.
func (b *Bitmap) ColorIndexAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0
	}
	switch b.format {
	case Format1bppIndexed:
		return (b.pix[y*b.stride+x/8] >> (7 - uint(x%8))) & 0x01
	case Format4bppIndexed:
		v := b.pix[y*b.stride+x/2]
		if x%2 == 0 {
			return v >> 4
		}
		return v & 0x0f
	}
	return 0
}

func (b *Bitmap) setColorIndex(x, y int, idx uint8) {
	switch b.format {
	case Format1bppIndexed:
		i, shift := y*b.stride+x/8, 7-uint(x%8)
		b.pix[i] = b.pix[i]&^(1<<shift) | (idx&0x01)<<shift
	case Format4bppIndexed:
		i := y*b.stride + x/2
		if x%2 == 0 {
			b.pix[i] = b.pix[i]&0x0f | idx<<4
		} else {
			b.pix[i] = b.pix[i]&0xf0 | idx&0x0f
		}
	}
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap(%d,%d,%v)", b.width, b.height, b.format)
}
