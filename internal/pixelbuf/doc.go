// Package pixelbuf provides fast direct access to the pixel memory of a bitmap.
//
// A PixelBuffer locks a bitmap.Bitmap on construction and reads and writes
// the locked bytes directly, decoding and encoding channels according to the
// bitmap's pixel depth. Only 8, 24 and 32 bits per pixel are supported.
//
// # Lifecycle
//
// Every buffer must be released, on every exit path:
//
//	buf, err := pixelbuf.Wrap(bm, bitmap.ReadWrite)
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
//
// Release is idempotent. Writes reach the bitmap when the buffer is released
// (or flushed by Save), subject to the lock mode.
//
// # Coordinates
//
// GetPixel and SetPixel do not check coordinates. The caller guarantees
// 0 <= x < Width() and 0 <= y < Height(). Coordinates outside the image but
// inside the locked memory silently address another pixel; coordinates
// past the end of the memory panic with an index out of range. Validate at
// the outer surface, not per pixel.
//
// # Channel Layout
//
//   - 32 bpp: bytes B, G, R, A
//   - 24 bpp: bytes B, G, R; reads are opaque, writes drop alpha
//   - 8 bpp: one gray byte; reads give R=G=B=gray, writes store the blue channel
//
// # Thread Safety
//
// A PixelBuffer is not safe for concurrent use, and at most one buffer may
// lock a given bitmap at a time.
package pixelbuf
