package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"
)

// Fixed-point BT.601 luma weights (14-bit), matching the usual
// RGB-to-gray conversion of camera pipelines.
const (
	lumaShift = 14
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
)

// Luma converts one RGB sample to 8-bit gray.
func Luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*lumaR + uint32(g)*lumaG + uint32(b)*lumaB + 1<<(lumaShift-1)) >> lumaShift)
}

// Gray returns the grayscale version of the frame.
func (f *Frame) Gray() *image.Gray {
	gray := image.NewGray(f.Bounds())
	for i, j := 0, 0; i < len(f.pix); i, j = i+3, j+1 {
		gray.Pix[j] = Luma(f.pix[i], f.pix[i+1], f.pix[i+2])
	}
	return gray
}

// GrayHistogram returns the 256-bin intensity histogram of a grayscale image.
//
// Only the pixels within gray.Bounds() are counted, so sub-images produce the
// histogram of their region.
func GrayHistogram(gray *image.Gray) []int {
	// Gray converts losslessly to RGBA, so the red channel carries the intensity.
	return histogram.NewRGBAHistogram(gray).R.Bins
}

// MeanIntensity returns the mean gray level of an image.
//
// Returns an error for an empty image.
func MeanIntensity(gray *image.Gray) (float64, error) {
	if gray == nil || gray.Bounds().Empty() {
		return 0, fmt.Errorf("%w: empty grayscale image", ErrInvalidFrame)
	}

	bins := GrayHistogram(gray)
	var sum, total float64
	for level, count := range bins {
		sum += float64(level) * float64(count)
		total += float64(count)
	}
	return sum / total, nil
}

// OtsuThreshold returns the gray level that maximizes between-class variance.
//
// A uniform image has no separating level and yields 0.
func OtsuThreshold(gray *image.Gray) uint8 {
	bins := GrayHistogram(gray)

	var total float64
	for _, c := range bins {
		total += float64(c)
	}
	if total == 0 {
		return 0
	}

	var mu float64
	for i, c := range bins {
		mu += float64(i) * float64(c) / total
	}

	var (
		mu1, q1  float64
		maxSigma float64
		maxVal   int
	)
	for i, c := range bins {
		p := float64(c) / total
		mu1 *= q1
		q1 += p
		q2 := 1 - q1

		if math.Min(q1, q2) < epsilon32 || math.Max(q1, q2) > 1-epsilon32 {
			continue
		}

		mu1 = (mu1 + float64(i)*p) / q1
		mu2 := (mu - q1*mu1) / q2
		sigma := q1 * q2 * (mu1 - mu2) * (mu1 - mu2)
		if sigma > maxSigma {
			maxSigma = sigma
			maxVal = i
		}
	}

	return uint8(maxVal)
}

// epsilon32 is the float32 machine epsilon.
const epsilon32 = 1.1920929e-07
