package detection

import "image"

// Position is the horizontal third of the frame a detection's center falls in.
type Position string

const (
	PositionLeft   Position = "left"
	PositionCenter Position = "center"
	PositionRight  Position = "right"
)

// ClassifyPosition buckets a horizontal center coordinate into frame thirds.
//
// Centers below 0.33*width are left, centers above 0.67*width are right, and
// everything in between (both boundaries included) is center.
func ClassifyPosition(centerX float64, frameWidth int) Position {
	w := float64(frameWidth)
	switch {
	case centerX < w*0.33:
		return PositionLeft
	case centerX > w*0.67:
		return PositionRight
	default:
		return PositionCenter
	}
}

// BBox is an axis-aligned box in pixel coordinates: top-left corner plus size.
type BBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// BBoxFromRect converts a half-open rectangle into a BBox.
func BBoxFromRect(r image.Rectangle) BBox {
	return BBox{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Rect returns the box as a half-open rectangle.
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Area returns W*H.
func (b BBox) Area() int {
	return b.W * b.H
}

// CenterX returns the horizontal center, X + W/2, without rounding.
func (b BBox) CenterX() float64 {
	return float64(b.X) + float64(b.W)/2
}

// Clamp restricts the box to a width x height frame. A box entirely outside
// the frame collapses to zero size.
func (b BBox) Clamp(width, height int) BBox {
	r := b.Rect().Intersect(image.Rect(0, 0, width, height))
	if r.Empty() {
		x := min(max(b.X, 0), width)
		y := min(max(b.Y, 0), height)
		return BBox{X: x, Y: y}
	}
	return BBoxFromRect(r)
}

// IoU returns intersection over union of two boxes. Two degenerate boxes with
// no area at all count as identical.
func IoU(a, b BBox) float64 {
	aa, ab := float64(a.Area()), float64(b.Area())
	if aa+ab == 0 {
		return 1
	}
	inter := float64(BBoxFromRect(a.Rect().Intersect(b.Rect())).Area())
	return inter / (aa + ab - inter)
}

// Detection is one labeled box found in a frame.
//
// Position is always derived from BBox and the frame width; build values
// with NewDetection rather than setting it by hand.
type Detection struct {
	Label      string   `json:"label"`
	BBox       BBox     `json:"bbox"`
	Confidence float64  `json:"confidence"`
	Position   Position `json:"position"`
}

// NewDetection builds a Detection and derives its position.
func NewDetection(label string, box BBox, confidence float64, frameWidth int) Detection {
	return Detection{
		Label:      label,
		BBox:       box,
		Confidence: confidence,
		Position:   ClassifyPosition(box.CenterX(), frameWidth),
	}
}

// Details holds heuristic per-face attributes. Each field is empty when it
// could not be derived.
type Details struct {
	Gender    string `json:"gender,omitempty"`
	AgeRange  string `json:"age_range,omitempty"`
	HairColor string `json:"hair_color,omitempty"`

	// HairTone is the mean hair-strip color as #rrggbb.
	HairTone string `json:"hair_tone,omitempty"`
}

// FaceDetection is a face box plus its heuristic attributes.
type FaceDetection struct {
	Detection
	Details Details `json:"details"`
}

// TextRegion is a wide blob likely to hold a line of text. Area is the
// polygon area of its outer contour, not the box area.
type TextRegion struct {
	BBox BBox    `json:"bbox"`
	Area float64 `json:"area"`
}

// NeutralBrightness is reported when no brightness could be measured.
const NeutralBrightness = 128

// Result is everything detected in one frame.
//
// People holds deep-detector persons, or cascade bodies only when the deep
// detector is unavailable and no face was found; never both.
type Result struct {
	Faces       []FaceDetection `json:"faces"`
	People      []Detection     `json:"people"`
	Objects     []Detection     `json:"objects"`
	TextRegions []TextRegion    `json:"text_regions"`
	Scene       string          `json:"scene"`
	Brightness  float64         `json:"brightness"`

	// DeepDetector reports whether the deep object detector ran.
	DeepDetector bool `json:"deep_detector"`

	// Diagnostics lists stages that failed and contributed nothing.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// EmptyResult returns the well-formed result used for an empty frame.
func EmptyResult() *Result {
	return &Result{
		Faces:       []FaceDetection{},
		People:      []Detection{},
		Objects:     []Detection{},
		TextRegions: []TextRegion{},
		Scene:       SceneUnknown,
		Brightness:  NeutralBrightness,
	}
}
