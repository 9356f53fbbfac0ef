package imaging

import "image"

// LaplacianVariance returns the population variance of the 3x3 Laplacian
// response over a grayscale image.
//
// The kernel is [0 1 0; 1 -4 1; 0 1 0] and responses are kept in float64, so
// negative values are not clipped. Pixels outside the image are taken by
// reflecting about the edge without repeating it (gfedcb|abcdefgh|gfedcba).
//
// A high variance means strong fine detail; a flat image returns 0. An empty
// image also returns 0.
func LaplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return 0
	}

	at := func(x, y int) float64 {
		x = reflect101(x, width)
		y = reflect101(y, height)
		return float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	var sum, sumSq float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := at(x, y-1) + at(x-1, y) + at(x+1, y) + at(x, y+1) - 4*at(x, y)
			sum += v
			sumSq += v * v
		}
	}

	n := float64(width * height)
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		return 0
	}
	return variance
}

// reflect101 maps an out-of-range index back into [0, n) by mirroring about
// the border pixel.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}

// clamp restricts val to the closed range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
