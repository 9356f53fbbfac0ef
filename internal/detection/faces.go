package detection

import (
	"image"

	"github.com/ironsheep/vision-mcp/internal/cascade"
	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// Classifier finds objects of one kind in a grayscale image. Rectangles are
// relative to gray.Bounds().Min.
type Classifier interface {
	DetectMultiScale(gray *image.Gray, opts cascade.Options) []image.Rectangle
}

// Scan parameters for the stock cascades.
var (
	FaceOptions = cascade.Options{ScaleFactor: 1.1, MinNeighbors: 5, MinSize: image.Pt(30, 30)}
	EyeOptions  = cascade.Options{ScaleFactor: 1.1, MinNeighbors: 3}
	BodyOptions = cascade.Options{ScaleFactor: 1.1, MinNeighbors: 3, MinSize: image.Pt(50, 100)}
)

// Fixed confidences assigned to cascade hits. Cascades give no probability,
// so these are conventions rather than measurements.
const (
	FaceConfidenceWithEyes = 0.9
	FaceConfidence         = 0.7
	BodyConfidence         = 0.6
)

// CascadeDetector finds faces and bodies with classical cascades.
type CascadeDetector struct {
	Face Classifier
	Eye  Classifier
	Body Classifier
}

// DetectFaces returns one detection per face, without attributes.
//
// The eye cascade is re-run inside each face box; two or more eyes raise the
// confidence from FaceConfidence to FaceConfidenceWithEyes.
func (d *CascadeDetector) DetectFaces(gray *image.Gray) []FaceDetection {
	width := gray.Bounds().Dx()
	faces := []FaceDetection{}
	for _, r := range d.Face.DetectMultiScale(gray, FaceOptions) {
		conf := FaceConfidence
		if d.countEyes(gray, r) >= 2 {
			conf = FaceConfidenceWithEyes
		}
		faces = append(faces, FaceDetection{
			Detection: NewDetection(LabelPerson, BBoxFromRect(r), conf, width),
		})
	}
	return faces
}

func (d *CascadeDetector) countEyes(gray *image.Gray, face image.Rectangle) int {
	if d.Eye == nil {
		return 0
	}
	roi := imaging.CropGray(gray, face)
	if roi.Bounds().Empty() {
		return 0
	}
	return len(d.Eye.DetectMultiScale(roi, EyeOptions))
}

// DetectBodies returns full-body detections labeled "person" at
// BodyConfidence.
func (d *CascadeDetector) DetectBodies(gray *image.Gray) []Detection {
	width := gray.Bounds().Dx()
	people := []Detection{}
	if d.Body == nil {
		return people
	}
	for _, r := range d.Body.DetectMultiScale(gray, BodyOptions) {
		people = append(people, NewDetection(LabelPerson, BBoxFromRect(r), BodyConfidence, width))
	}
	return people
}
