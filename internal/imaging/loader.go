package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/fastbitmap/internal/bitmap"
)

// ImageCache provides thread-safe caching of decoded bitmaps to avoid redundant disk reads.
//
// The cache stores *bitmap.Bitmap values keyed by their file path. Once an image
// is loaded, subsequent Load() calls for the same path return the cached bitmap
// without disk I/O. Pixel writes made through a pixel buffer on a cached bitmap
// are visible to later Load() calls for the same path.
//
// ImageCache is safe for concurrent use by multiple goroutines. The bitmaps it
// returns are not; lock them through a single pixel buffer at a time.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	bm, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	buf, err := pixelbuf.Wrap(bm, bitmap.ReadOnly)
//	...
//	cache.Evict("/path/to/image.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cacheEntry
}

type cacheEntry struct {
	bm *bitmap.Bitmap

	// onDisk is false for bitmaps stored with Put.
	onDisk bool
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cacheEntry),
	}
}

// Load retrieves a bitmap from the cache or decodes it from disk if not cached.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. The bitmap's pixel
// format is derived from the decoded image, see bitmap.FromImage.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a supported image
func (c *ImageCache) Load(path string) (*bitmap.Bitmap, error) {
	e, err := c.load(path)
	return e.bm, err
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}

	bm := bitmap.FromImage(img)
	if bm == nil {
		return cacheEntry{}, fmt.Errorf("failed to decode image: %s is empty", path)
	}

	e := cacheEntry{bm: bm, onDisk: true}
	c.mu.Lock()
	if cached, ok := c.images[path]; ok {
		e = cached
	} else {
		c.images[path] = e
	}
	c.mu.Unlock()

	return e, nil
}

// Put stores a bitmap under path, replacing any cached entry. The path is
// only a key; no file is read or written.
func (c *ImageCache) Put(path string, bm *bitmap.Bitmap) {
	c.mu.Lock()
	c.images[path] = cacheEntry{bm: bm}
	c.mu.Unlock()
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the file format detected from the extension: "png", "jpeg",
	// "gif", "bmp", "tiff", "webp" or "unknown".
	Format string `json:"format"`

	// PixelFormat is the bitmap's native pixel format, e.g. "24bpp-rgb".
	PixelFormat string `json:"pixel_format"`

	// BitsPerPixel is the native pixel depth.
	BitsPerPixel int `json:"bits_per_pixel"`

	// Supported reports whether a pixel buffer can wrap the bitmap (8, 24 or 32 bpp).
	Supported bool `json:"supported"`

	// HasAlpha indicates whether the pixel format stores an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes, or 0 for
	// bitmaps that only exist in the cache.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache (if not already cached) and
// returns its metadata.
//
// Bitmaps placed in the cache with Put have no file; their FileSizeBytes is 0
// even when a file of the same name exists.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}
	bm := e.bm

	var size int64
	if e.onDisk {
		if stat, err := os.Stat(path); err == nil {
			size = stat.Size()
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
	}

	depth := bm.Format().BitsPerPixel()
	return &ImageInfo{
		Width:         bm.Width(),
		Height:        bm.Height(),
		Format:        formatFromPath(path),
		PixelFormat:   bm.Format().String(),
		BitsPerPixel:  depth,
		Supported:     depth == 8 || depth == 24 || depth == 32,
		HasAlpha:      bm.Format().HasAlpha(),
		FileSizeBytes: size,
	}, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	}
	return "unknown"
}
