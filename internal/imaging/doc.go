// Package imaging connects image files to pixel buffers.
//
// It decodes image files into bitmap.Bitmap values (cached per path), reports
// their metadata, and builds the bounds-checked operations the tool server and
// CLI expose on top of pixel buffers: color sampling, dominant colors, region
// comparison, cropping, single-pixel writes, inversion and saving.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Functions in this package validate coordinates before touching pixel
// memory; the pixel buffer underneath does not.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The bitmaps it hands out are
// not: every sampling function locks the bitmap for its duration and fails with
// bitmap.ErrAlreadyLocked if another buffer holds it.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Supported Formats
//
// PNG, JPEG and GIF through the standard library, BMP, TIFF and WebP through
// golang.org/x/image. Files are opened with github.com/disintegration/imaging.
package imaging
