package imaging

import "image"

// ThresholdBinaryInv maps every pixel at or below t to 255 and every pixel
// above t to 0.
func ThresholdBinaryInv(gray *image.Gray, t uint8) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		src := gray.Pix[gray.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			if src[x] <= t {
				dst[x] = 255
			}
		}
	}
	return out
}

// DilateRect dilates an image with a kernelW x kernelH rectangle anchored at
// its center, repeated the given number of times.
//
// Each output pixel is the maximum over the in-bounds pixels under the
// kernel; pixels beyond the border never contribute. The rectangle is
// separable, so each iteration runs a horizontal then a vertical pass.
func DilateRect(src *image.Gray, kernelW, kernelH, iterations int) *image.Gray {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	cur := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		copy(cur.Pix[y*cur.Stride:y*cur.Stride+width], src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
	}
	if kernelW <= 0 || kernelH <= 0 {
		return cur
	}

	ax, ay := kernelW/2, kernelH/2
	tmp := image.NewGray(cur.Rect)

	for it := 0; it < iterations; it++ {
		for y := 0; y < height; y++ {
			row := cur.Pix[y*cur.Stride:]
			out := tmp.Pix[y*tmp.Stride:]
			for x := 0; x < width; x++ {
				x0 := clamp(x-ax, 0, width-1)
				x1 := clamp(x-ax+kernelW-1, 0, width-1)
				var m uint8
				for k := x0; k <= x1; k++ {
					if row[k] > m {
						m = row[k]
					}
				}
				out[x] = m
			}
		}

		for y := 0; y < height; y++ {
			y0 := clamp(y-ay, 0, height-1)
			y1 := clamp(y-ay+kernelH-1, 0, height-1)
			out := cur.Pix[y*cur.Stride:]
			for x := 0; x < width; x++ {
				var m uint8
				for k := y0; k <= y1; k++ {
					if v := tmp.Pix[k*tmp.Stride+x]; v > m {
						m = v
					}
				}
				out[x] = m
			}
		}
	}

	return cur
}
