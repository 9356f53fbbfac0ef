package cascade

import "image"

// integral holds summed-area tables of one grayscale image. Every table has
// (width+1) x (height+1) entries; row 0 and column 0 are zero.
type integral struct {
	width, height int
	stride        int
	sum           []int64
	sqsum         []int64
	tilted        []int64
}

// newIntegral builds the upright tables of gray, plus the 45-degree table
// when withTilted is set.
func newIntegral(gray *image.Gray, withTilted bool) *integral {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	ii := &integral{
		width:  w,
		height: h,
		stride: w + 1,
		sum:    make([]int64, (w+1)*(h+1)),
		sqsum:  make([]int64, (w+1)*(h+1)),
	}

	st := ii.stride
	for y := 0; y < h; y++ {
		row := gray.Pix[gray.PixOffset(b.Min.X, b.Min.Y+y):]
		var rs, rsq int64
		for x := 0; x < w; x++ {
			v := int64(row[x])
			rs += v
			rsq += v * v
			ii.sum[(y+1)*st+x+1] = ii.sum[y*st+x+1] + rs
			ii.sqsum[(y+1)*st+x+1] = ii.sqsum[y*st+x+1] + rsq
		}
	}

	if withTilted {
		ii.tilted = tiltedIntegral(gray, w, h)
	}
	return ii
}

// tiltedIntegral returns T where T(X,Y) is the sum of pixels (x,y) with
// y < Y and |x-X+1| <= Y-y-1, an upward cone with its apex at (X-1, Y-1).
//
// Cones with apex R(x,y) satisfy
//
//	R(x,y) = R(x-1,y-1) + R(x+1,y-1) - R(x,y-2) + I(x,y) + I(x,y-1)
//
// Apexes left and right of the image still cover pixels inside it, so rows
// are computed over a band padded by height+1 on both sides.
func tiltedIntegral(gray *image.Gray, w, h int) []int64 {
	b := gray.Bounds()
	st := w + 1
	out := make([]int64, st*(h+1))

	pad := h + 1
	pw := w + 2*pad
	r2 := make([]int64, pw)
	r1 := make([]int64, pw)
	cur := make([]int64, pw)

	pixel := func(x, y int) int64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return int64(gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)])
	}

	for y := 0; y < h; y++ {
		for i := 0; i < pw; i++ {
			x := i - pad
			v := pixel(x, y) + pixel(x, y-1) - r2[i]
			if i > 0 {
				v += r1[i-1]
			}
			if i < pw-1 {
				v += r1[i+1]
			}
			cur[i] = v
		}
		for X := 0; X <= w; X++ {
			out[(y+1)*st+X] = cur[X-1+pad]
		}
		r2, r1, cur = r1, cur, r2
	}

	return out
}

// rectSum returns the sum of pixels in the w x h rectangle at (x, y).
func (ii *integral) rectSum(t []int64, x, y, w, h int) int64 {
	st := ii.stride
	return t[y*st+x] - t[y*st+x+w] - t[(y+h)*st+x] + t[(y+h)*st+x+w]
}

// tiltedSum returns the sum of the 45-degree rotated rectangle whose top
// corner is at (x, y), with sides w (down-right) and h (down-left).
func (ii *integral) tiltedSum(x, y, w, h int) int64 {
	st := ii.stride
	t := ii.tilted
	return t[y*st+x] - t[(y+h)*st+x-h] - t[(y+w)*st+x+w] + t[(y+w+h)*st+x+w-h]
}
