package vision

import (
	"github.com/ironsheep/vision-mcp/internal/detection"
	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// objectDetector is the capability variant chosen at construction.
type objectDetector interface {
	available() bool
	detect(frame *imaging.Frame) ([]detection.Detection, error)
	close() error
}

// cascadeOnly has no deep detector.
type cascadeOnly struct{}

func (cascadeOnly) available() bool { return false }

func (cascadeOnly) detect(*imaging.Frame) ([]detection.Detection, error) { return nil, nil }

func (cascadeOnly) close() error { return nil }

// withDeep runs the deep detector.
type withDeep struct {
	det *detection.ObjectDetector
}

func (withDeep) available() bool { return true }

func (w withDeep) detect(frame *imaging.Frame) ([]detection.Detection, error) {
	return w.det.Detect(frame)
}

func (w withDeep) close() error { return w.det.Close() }
