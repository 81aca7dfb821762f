// Package bitmap provides the in-memory bitmap that pixel buffers lock.
//
// A Bitmap is a decoded pixel grid stored in its native pixel format. It
// implements image.Image, so any codec can encode it, and it exposes a
// platform-style lock: LockBits hands out a working copy of the pixel rows
// and UnlockBits commits or discards that copy according to the lock mode.
//
// # Memory Layout
//
// Rows are packed with no padding. The stride is (width*bitsPerPixel+7)/8
// bytes, so for byte-aligned formats the pixel at (x, y) starts at
// ((y*width)+x)*(bitsPerPixel/8). Channel order per format:
//   - Format8bppGray: one gray byte
//   - Format16bppGray: big-endian 16-bit gray
//   - Format24bppRGB: B, G, R
//   - Format32bppARGB: B, G, R, A (not premultiplied)
//   - Format1bppIndexed, Format4bppIndexed: palette indices, most significant bits first
//
// # Locking
//
// At most one lock may be outstanding on a bitmap. A second LockBits fails
// with ErrAlreadyLocked until the first lock is released. Bitmap methods are
// not safe for concurrent use; callers serialize access.
package bitmap
