package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// MeanRGB returns the average 8-bit channel values over a region, without
// rounding.
//
// The region is clipped to the frame bounds. ok is false when the clipped
// region is empty.
func MeanRGB(f *Frame, r image.Rectangle) (red, green, blue float64, ok bool) {
	r = f.Clip(r)
	if r.Empty() {
		return 0, 0, 0, false
	}

	var sr, sg, sb uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb := f.RGB(x, y)
			sr += uint64(cr)
			sg += uint64(cg)
			sb += uint64(cb)
		}
	}

	n := float64(r.Dx() * r.Dy())
	return float64(sr) / n, float64(sg) / n, float64(sb) / n, true
}

// Hex formats 8-bit channel means as a #rrggbb color. Channels are rounded
// to the nearest level and clamped to [0,255].
func Hex(red, green, blue float64) string {
	return colorful.Color{R: red / 255, G: green / 255, B: blue / 255}.Clamped().Hex()
}
