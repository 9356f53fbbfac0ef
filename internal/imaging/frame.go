package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

// ErrInvalidFrame is returned when a frame has no pixels or its buffer does not
// match the declared dimensions.
var ErrInvalidFrame = errors.New("invalid frame")

// Frame is a dense RGB raster with 8 bits per channel.
//
// Samples are stored row-major as R, G, B triplets. A Frame never aliases the
// caller's buffer: constructors copy, and no method mutates the pixels, so a
// Frame can be shared across goroutines for the duration of a detection call.
type Frame struct {
	width  int
	height int
	pix    []uint8
}

// NewFrame copies an RGB buffer of width*height*3 bytes into a new Frame.
//
// Returns ErrInvalidFrame when either dimension is not positive or the buffer
// length does not equal width*height*3.
func NewFrame(width, height int, rgb []uint8) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidFrame, width, height)
	}
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("%w: buffer has %d bytes, want %d", ErrInvalidFrame, len(rgb), width*height*3)
	}

	pix := make([]uint8, len(rgb))
	copy(pix, rgb)
	return &Frame{width: width, height: height, pix: pix}, nil
}

// FromImage converts any image.Image into a Frame, dropping alpha.
//
// The image origin is moved to (0,0). Returns ErrInvalidFrame for a nil or
// empty image.
func FromImage(img image.Image) (*Frame, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidFrame)
	}

	src := clone.AsRGBA(img)
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pix := make([]uint8, width*height*3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		off := src.PixOffset(bounds.Min.X, y)
		for x := 0; x < width; x++ {
			pix[i] = src.Pix[off]
			pix[i+1] = src.Pix[off+1]
			pix[i+2] = src.Pix[off+2]
			i += 3
			off += 4
		}
	}

	return &Frame{width: width, height: height, pix: pix}, nil
}

// Width returns the frame width in pixels. A nil frame has width 0.
func (f *Frame) Width() int {
	if f == nil {
		return 0
	}
	return f.width
}

// Height returns the frame height in pixels. A nil frame has height 0.
func (f *Frame) Height() int {
	if f == nil {
		return 0
	}
	return f.height
}

// Empty reports whether the frame is nil or has no pixels.
func (f *Frame) Empty() bool {
	return f == nil || f.width <= 0 || f.height <= 0 || len(f.pix) == 0
}

// Bounds returns the frame rectangle, always anchored at (0,0).
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width(), f.Height())
}

// RGB returns the channel samples at (x, y). No bounds checking is performed.
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := (y*f.width + x) * 3
	return f.pix[i], f.pix[i+1], f.pix[i+2]
}

// Image returns an opaque RGBA copy of the frame for use with image libraries.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for i, j := 0, 0; i < len(f.pix); i, j = i+3, j+4 {
		img.Pix[j] = f.pix[i]
		img.Pix[j+1] = f.pix[i+1]
		img.Pix[j+2] = f.pix[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img
}

// Clip intersects r with the frame bounds.
func (f *Frame) Clip(r image.Rectangle) image.Rectangle {
	return r.Intersect(f.Bounds())
}
