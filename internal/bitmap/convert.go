package bitmap

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// FromImage copies a decoded image into a new bitmap, picking the smallest
// native format that holds it exactly:
//   - *image.Gray -> Format8bppGray
//   - *image.Gray16 -> Format16bppGray
//   - *image.Paletted with up to 2 colors -> Format1bppIndexed
//   - *image.Paletted with up to 16 colors -> Format4bppIndexed
//   - other opaque images -> Format24bppRGB
//   - everything else -> Format32bppARGB
//
// Small palettes are packed by entry count, not by the file's declared depth,
// so a two-color GIF becomes a 1 bpp bitmap that pixel buffers do not wrap.
// Paletted images with more than 16 colors are expanded to 24 or 32 bpp.
//
// A *Bitmap source is copied as-is in its own format. FromImage returns nil
// for an empty image.
func FromImage(img image.Image) *Bitmap {
	r := img.Bounds()
	if r.Empty() {
		return nil
	}
	w, h := r.Dx(), r.Dy()

	switch src := img.(type) {
	case *Bitmap:
		bm := mustNew(w, h, src.format, src.palette)
		copy(bm.pix, src.pix)
		return bm
	case *image.Gray:
		bm := mustNew(w, h, Format8bppGray, nil)
		for y := 0; y < h; y++ {
			i := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(bm.pix[y*bm.stride:(y+1)*bm.stride], src.Pix[i:i+w])
		}
		return bm
	case *image.Gray16:
		bm := mustNew(w, h, Format16bppGray, nil)
		for y := 0; y < h; y++ {
			i := src.PixOffset(r.Min.X, r.Min.Y+y)
			copy(bm.pix[y*bm.stride:(y+1)*bm.stride], src.Pix[i:i+2*w])
		}
		return bm
	case *image.Paletted:
		if bm := fromPaletted(src); bm != nil {
			return bm
		}
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return fromOpaque(img)
	}
	return fromNRGBA(img)
}

func fromPaletted(src *image.Paletted) *Bitmap {
	var format PixelFormat
	switch n := len(src.Palette); {
	case n == 0:
		return nil
	case n <= 2:
		format = Format1bppIndexed
	case n <= 16:
		format = Format4bppIndexed
	default:
		return nil
	}

	r := src.Rect
	bm := mustNew(r.Dx(), r.Dy(), format, src.Palette)
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			bm.setColorIndex(x, y, src.ColorIndexAt(r.Min.X+x, r.Min.Y+y))
		}
	}
	return bm
}

// fromOpaque stores an opaque image as B,G,R triples. Premultiplied and
// straight alpha agree when every pixel is opaque, so the RGBA copy is exact.
func fromOpaque(img image.Image) *Bitmap {
	src := clone.AsRGBA(img)
	bm := mustNew(src.Rect.Dx(), src.Rect.Dy(), Format24bppRGB, nil)
	for y := 0; y < bm.height; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+4*bm.width]
		d := bm.pix[y*bm.stride : (y+1)*bm.stride]
		for x := 0; x < bm.width; x++ {
			d[3*x+0] = s[4*x+2]
			d[3*x+1] = s[4*x+1]
			d[3*x+2] = s[4*x+0]
		}
	}
	return bm
}

func fromNRGBA(img image.Image) *Bitmap {
	src := imaging.Clone(img)
	bm := mustNew(src.Rect.Dx(), src.Rect.Dy(), Format32bppARGB, nil)
	for y := 0; y < bm.height; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+4*bm.width]
		d := bm.pix[y*bm.stride : (y+1)*bm.stride]
		for x := 0; x < bm.width; x++ {
			d[4*x+0] = s[4*x+2]
			d[4*x+1] = s[4*x+1]
			d[4*x+2] = s[4*x+0]
			d[4*x+3] = s[4*x+3]
		}
	}
	return bm
}

// mustNew is for callers that already hold a valid size and format.
func mustNew(w, h int, format PixelFormat, pal color.Palette) *Bitmap {
	bm, err := NewWithPalette(w, h, format, pal)
	if err != nil {
		panic(err)
	}
	return bm
}
