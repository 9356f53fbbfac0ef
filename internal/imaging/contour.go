package imaging

import (
	"image"
	"math"
)

// Contour is the ordered outer boundary of one connected foreground blob.
type Contour struct {
	Points []image.Point
}

// BoundingRect returns the smallest axis-aligned rectangle containing every
// contour point. The rectangle is half-open, so a single point has size 1x1.
func (c Contour) BoundingRect() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := c.Points[0].X, c.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range c.Points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Area returns the polygon area enclosed by the contour points (shoelace
// formula). The polygon passes through pixel centers, so a filled w x h
// rectangle has area (w-1)*(h-1).
func (c Contour) Area() float64 {
	n := len(c.Points)
	if n < 3 {
		return 0
	}
	var twice int
	for i := 0; i < n; i++ {
		p, q := c.Points[i], c.Points[(i+1)%n]
		twice += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(float64(twice)) / 2
}

// Chain directions, counterclockwise on screen starting east.
var contourDirs = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// ExternalContours returns the outer borders of the outermost foreground
// blobs of a binary image. Any nonzero pixel is foreground and blobs are
// 8-connected; blobs that sit inside a hole of another blob are skipped.
//
// Contours are returned in raster order of their topmost-leftmost pixel.
func ExternalContours(bin *image.Gray) []Contour {
	bounds := bin.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil
	}

	fg := make([][]bool, height)
	for y := 0; y < height; y++ {
		fg[y] = make([]bool, width)
		row := bin.Pix[bin.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			fg[y][x] = row[x] != 0
		}
	}

	outside := outsideBackground(fg, width, height)
	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	var contours []Contour
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !fg[y][x] || visited[y][x] {
				continue
			}
			markComponent(fg, visited, x, y, width, height)

			// The first pixel met in raster order has background directly
			// above it; the blob is outermost iff that background is outside.
			if y > 0 && !outside[y-1][x] {
				continue
			}
			contours = append(contours, Contour{Points: traceBorder(fg, x, y, width, height)})
		}
	}

	return contours
}

// outsideBackground marks background pixels 4-connected to the image border.
func outsideBackground(fg [][]bool, width, height int) [][]bool {
	outside := make([][]bool, height)
	for y := range outside {
		outside[y] = make([]bool, width)
	}

	var stack []image.Point
	push := func(x, y int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}
		if fg[y][x] || outside[y][x] {
			return
		}
		outside[y][x] = true
		stack = append(stack, image.Point{X: x, Y: y})
	}

	for x := 0; x < width; x++ {
		push(x, 0)
		push(x, height-1)
	}
	for y := 0; y < height; y++ {
		push(0, y)
		push(width-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	return outside
}

// markComponent flood-fills the 8-connected blob containing (startX, startY).
//
// Uses an explicit stack so large blobs cannot overflow the goroutine stack.
func markComponent(fg, visited [][]bool, startX, startY, width, height int) {
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !fg[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// traceBorder follows the outer border of the blob whose topmost-leftmost
// pixel is (x0, y0), returning its pixels in traversal order.
func traceBorder(fg [][]bool, x0, y0, width, height int) []image.Point {
	isFg := func(p image.Point) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height && fg[p.Y][p.X]
	}

	start := image.Point{X: x0, Y: y0}

	// Find the first foreground neighbor clockwise from the west.
	first := -1
	for k := 0; k < 8; k++ {
		d := (4 - k + 8) % 8
		if isFg(start.Add(contourDirs[d])) {
			first = d
			break
		}
	}
	if first < 0 {
		return []image.Point{start}
	}

	i1 := start.Add(contourDirs[first])
	i3 := start
	// Direction from i3 back to the previous border pixel.
	back := first

	points := []image.Point{}
	for {
		var i4 image.Point
		var d4 int
		for k := 1; k <= 8; k++ {
			d := (back + k) % 8
			if n := i3.Add(contourDirs[d]); isFg(n) {
				i4, d4 = n, d
				break
			}
		}

		points = append(points, i3)
		if i4 == start && i3 == i1 {
			break
		}

		back = (d4 + 4) % 8
		i3 = i4
	}

	return points
}
