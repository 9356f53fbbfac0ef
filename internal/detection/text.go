package detection

import (
	"image"

	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// Structuring element and filters of the text-region heuristic.
const (
	textKernelW      = 25
	textKernelH      = 3
	textDilateIters  = 2
	textMinAreaFrac  = 0.02
	textMinWidthFrac = 0.15
	textMinHeight    = 25
	textMinAspect    = 2
	textMarginFrac   = 0.1
	textMaxRightFrac = 0.9
)

// FindTextRegions locates wide, centered blobs that look like lines of text.
//
// This is not OCR. The grayscale frame is binarized with an Otsu threshold
// and inverted so dark strokes become foreground, then dilated with a 25x3
// rectangle twice so neighboring characters merge into line-shaped blobs.
//
// # Filters
//
// An external contour is kept only when all of these hold, for a W x H frame:
//   - contour area > 0.02*W*H
//   - box width > 0.15*W and box height > 25
//   - width/height > 2
//   - box left edge > 0.1*W and right edge < 0.9*W
//
// Regions are returned in raster order of their topmost point.
func FindTextRegions(gray *image.Gray) []TextRegion {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()
	regions := []TextRegion{}
	if width <= 0 || height <= 0 {
		return regions
	}

	t := imaging.OtsuThreshold(gray)
	mask := imaging.DilateRect(imaging.ThresholdBinaryInv(gray, t), textKernelW, textKernelH, textDilateIters)

	minArea := float64(width*height) * textMinAreaFrac
	minWidth := float64(width) * textMinWidthFrac

	for _, c := range imaging.ExternalContours(mask) {
		area := c.Area()
		if !(area > minArea) {
			continue
		}
		box := BBoxFromRect(c.BoundingRect())

		aspect := 0.0
		if box.H > 0 {
			aspect = float64(box.W) / float64(box.H)
		}
		if aspect > textMinAspect &&
			float64(box.W) > minWidth &&
			box.H > textMinHeight &&
			float64(box.X) > float64(width)*textMarginFrac &&
			float64(box.X+box.W) < float64(width)*textMaxRightFrac {
			regions = append(regions, TextRegion{BBox: box, Area: area})
		}
	}

	return regions
}
