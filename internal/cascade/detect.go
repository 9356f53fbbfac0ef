package cascade

import (
	"image"
	"math"

	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// DefaultScaleFactor is the pyramid step used when Options.ScaleFactor is not
// greater than 1.
const DefaultScaleFactor = 1.1

// Options controls a multi-scale scan.
type Options struct {
	// ScaleFactor is the ratio between consecutive pyramid scales.
	ScaleFactor float64

	// MinNeighbors is the number of overlapping raw hits a detection needs
	// (strictly more than this many). Zero disables grouping and returns
	// every raw hit.
	MinNeighbors int

	// MinSize skips scales whose window is smaller in either dimension.
	// The zero value imposes no minimum.
	MinSize image.Point

	// MaxSize stops the scan once the window exceeds it in either
	// dimension. The zero value means the image size.
	MaxSize image.Point
}

// DetectMultiScale scans gray at every pyramid scale and returns the grouped
// detections, in coordinates relative to gray.Bounds().Min.
//
// The image is shrunk by successive factors while the window stays at its
// trained size. A window positioned at (x, y) of the scaled image maps to
// (round(x*factor), round(y*factor)) with size round(window*factor).
//
// # Scan Pattern
//
// Windows advance by 2 pixels (1 pixel once the factor exceeds 2), and a
// window rejected by the very first stage skips the following position.
func (c *Cascade) DetectMultiScale(gray *image.Gray, opts Options) []image.Rectangle {
	b := gray.Bounds()
	imgW, imgH := b.Dx(), b.Dy()
	if imgW <= 0 || imgH <= 0 {
		return nil
	}

	scaleFactor := opts.ScaleFactor
	if scaleFactor <= 1 {
		scaleFactor = DefaultScaleFactor
	}
	maxSize := opts.MaxSize
	if maxSize.X <= 0 || maxSize.Y <= 0 {
		maxSize = image.Pt(imgW, imgH)
	}

	var hits []image.Rectangle
	for factor := 1.0; ; factor *= scaleFactor {
		win := image.Pt(roundInt(float64(c.window.X)*factor), roundInt(float64(c.window.Y)*factor))
		if win.X > maxSize.X || win.Y > maxSize.Y || win.X > imgW || win.Y > imgH {
			break
		}
		if win.X < opts.MinSize.X || win.Y < opts.MinSize.Y {
			continue
		}

		sz := image.Pt(roundInt(float64(imgW)/factor), roundInt(float64(imgH)/factor))
		if sz.X-c.window.X <= 0 || sz.Y-c.window.Y <= 0 {
			break
		}
		hits = append(hits, c.scanScale(scaleGray(gray, sz), factor, win)...)
	}

	return GroupRectangles(hits, opts.MinNeighbors, groupEps)
}

// scanScale slides the trained window over one pyramid level.
func (c *Cascade) scanScale(gray *image.Gray, factor float64, win image.Point) []image.Rectangle {
	ii := newIntegral(gray, c.hasTilted)
	workW := ii.width - c.window.X
	workH := ii.height - c.window.Y

	step := 2
	if factor > 2 {
		step = 1
	}

	var hits []image.Rectangle
	for y := 0; y < workH; y += step {
		for x := 0; x < workW; x += step {
			result := c.runAt(ii, x, y)
			if result > 0 {
				px, py := roundInt(float64(x)*factor), roundInt(float64(y)*factor)
				hits = append(hits, image.Rect(px, py, px+win.X, py+win.Y))
			}
			if result == 0 {
				x += step
			}
		}
	}
	return hits
}

// runAt evaluates the cascade on the window at (x, y). It returns 1 when
// every stage passes, otherwise minus the index of the rejecting stage.
func (c *Cascade) runAt(ii *integral, x, y int) int {
	nw, nh := c.window.X-2, c.window.Y-2
	area := float64(nw * nh)
	s := float64(ii.rectSum(ii.sum, x+1, y+1, nw, nh))
	sq := float64(ii.rectSum(ii.sqsum, x+1, y+1, nw, nh))

	nf := area*sq - s*s
	if nf > 0 {
		nf = math.Sqrt(nf)
	} else {
		nf = 1
	}
	inv := 1 / nf

	for si := range c.stages {
		st := &c.stages[si]
		var sum float64
		for ti := range st.trees {
			t := &st.trees[ti]
			idx := 0
			for {
				n := &t.nodes[idx]
				val := c.featureValue(ii, n.feature, x, y) * inv
				if val < n.threshold {
					idx = n.left
				} else {
					idx = n.right
				}
				if idx <= 0 {
					break
				}
			}
			sum += t.leaves[-idx]
		}
		if sum < st.threshold {
			return -si
		}
	}
	return 1
}

func (c *Cascade) featureValue(ii *integral, fi, x, y int) float64 {
	f := &c.features[fi]
	var v float64
	for _, r := range f.rects {
		if r.weight == 0 {
			continue
		}
		var s int64
		if f.tilted {
			s = ii.tiltedSum(x+r.x, y+r.y, r.w, r.h)
		} else {
			s = ii.rectSum(ii.sum, x+r.x, y+r.y, r.w, r.h)
		}
		v += r.weight * float64(s)
	}
	return v
}

// scaleGray returns gray resized to sz, or an origin-anchored copy when the
// size is unchanged.
func scaleGray(gray *image.Gray, sz image.Point) *image.Gray {
	b := gray.Bounds()
	if b.Dx() == sz.X && b.Dy() == sz.Y {
		if b.Min == (image.Point{}) {
			return gray
		}
		return imaging.CropGray(gray, b)
	}
	return imaging.ResizeGray(gray, sz.X, sz.Y)
}

// roundInt rounds to the nearest integer, ties to even.
func roundInt(v float64) int {
	return int(math.RoundToEven(v))
}
