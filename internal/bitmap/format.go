package bitmap

import "fmt"

// PixelFormat identifies how a bitmap stores one pixel in memory.
type PixelFormat int

const (
	FormatUndefined PixelFormat = iota
	Format1bppIndexed
	Format4bppIndexed
	Format8bppGray
	Format16bppGray
	Format24bppRGB
	Format32bppARGB
)

// BitsPerPixel returns the pixel depth of the format, or 0 if undefined.
func (f PixelFormat) BitsPerPixel() int {
	switch f {
	case Format1bppIndexed:
		return 1
	case Format4bppIndexed:
		return 4
	case Format8bppGray:
		return 8
	case Format16bppGray:
		return 16
	case Format24bppRGB:
		return 24
	case Format32bppARGB:
		return 32
	}
	return 0
}

// Indexed reports whether pixels are palette indices.
func (f PixelFormat) Indexed() bool {
	return f == Format1bppIndexed || f == Format4bppIndexed
}

// HasAlpha reports whether the format stores an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f == Format32bppARGB
}

func (f PixelFormat) valid() bool {
	return f.BitsPerPixel() > 0
}

func (f PixelFormat) String() string {
	switch f {
	case Format1bppIndexed:
		return "1bpp-indexed"
	case Format4bppIndexed:
		return "4bpp-indexed"
	case Format8bppGray:
		return "8bpp-gray"
	case Format16bppGray:
		return "16bpp-gray"
	case Format24bppRGB:
		return "24bpp-rgb"
	case Format32bppARGB:
		return "32bpp-argb"
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// LockMode selects what a lock does with the pixel data on acquire and release.
type LockMode int

const (
	// ReadOnly populates the working copy and discards it on unlock.
	ReadOnly LockMode = iota + 1
	// WriteOnly starts from a zeroed working copy and commits it on unlock.
	WriteOnly
	// ReadWrite populates the working copy and commits it on unlock.
	ReadWrite
)

func (m LockMode) readable() bool { return m == ReadOnly || m == ReadWrite }

func (m LockMode) writable() bool { return m == WriteOnly || m == ReadWrite }

func (m LockMode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case ReadWrite:
		return "read-write"
	}
	return fmt.Sprintf("LockMode(%d)", int(m))
}

// ParseLockMode converts "read-only", "write-only" or "read-write" to a LockMode.
func ParseLockMode(s string) (LockMode, error) {
	switch s {
	case "read-only", "ro":
		return ReadOnly, nil
	case "write-only", "wo":
		return WriteOnly, nil
	case "read-write", "rw", "":
		return ReadWrite, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLockMode, s)
}
