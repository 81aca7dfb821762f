package pixelbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrNullBuffer is returned when an operation needs backing memory and
	// the buffer has none.
	ErrNullBuffer = errors.New("pixel buffer has no backing bitmap")

	// ErrUnsupportedDepth matches every *UnsupportedDepthError via errors.Is.
	ErrUnsupportedDepth = errors.New("unsupported pixel depth")
)

// UnsupportedDepthError is returned when a bitmap's depth is not 8, 24 or 32
// bits per pixel.
type UnsupportedDepthError struct {
	Depth int
}

func (e *UnsupportedDepthError) Error() string {
	return fmt.Sprintf("only 8, 24 and 32 bpp images are supported, got %d bpp", e.Depth)
}

func (e *UnsupportedDepthError) Unwrap() error {
	return ErrUnsupportedDepth
}
