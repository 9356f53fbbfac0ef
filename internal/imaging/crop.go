package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop returns a copy of the given region of the frame.
//
// The region is clipped to the frame bounds first. Returns ErrInvalidFrame if
// nothing of the region lies inside the frame.
func (f *Frame) Crop(r image.Rectangle) (*Frame, error) {
	r = f.Clip(r)
	if r.Empty() {
		return nil, fmt.Errorf("%w: crop region outside frame", ErrInvalidFrame)
	}
	return FromImage(imaging.Crop(f.Image(), r))
}

// CropGray copies a region of a grayscale image into a new image anchored at
// (0,0). The region is clipped to the source bounds; an empty intersection
// yields an empty image.
func CropGray(gray *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(gray.Bounds())
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		src := gray.Pix[gray.PixOffset(r.Min.X, r.Min.Y+y):]
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()], src[:r.Dx()])
	}
	return out
}

// ResizeGray scales a grayscale image to width x height with bilinear
// interpolation.
func ResizeGray(gray *image.Gray, width, height int) *image.Gray {
	resized := imaging.Resize(gray, width, height, imaging.Linear)
	out := image.NewGray(image.Rect(0, 0, width, height))
	for i, j := 0, 0; j < len(out.Pix); i, j = i+4, j+1 {
		out.Pix[j] = resized.Pix[i]
	}
	return out
}

// Resize scales the frame to width x height with bilinear interpolation.
func (f *Frame) Resize(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize to %dx%d", ErrInvalidFrame, width, height)
	}
	return FromImage(imaging.Resize(f.Image(), width, height, imaging.Linear))
}
