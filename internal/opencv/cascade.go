//go:build gocv

package opencv

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ironsheep/vision-mcp/internal/cascade"
	"github.com/ironsheep/vision-mcp/internal/detection"
)

// haar is a detection.Classifier backed by an OpenCV CascadeClassifier.
type haar struct {
	mu  sync.Mutex
	clf gocv.CascadeClassifier
}

// OpenCascade loads an OpenCV haar cascade file.
func OpenCascade(path string) (detection.Classifier, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cascade file not accessible: %w", err)
	}

	clf := gocv.NewCascadeClassifier()
	if !clf.Load(path) {
		clf.Close()
		return nil, fmt.Errorf("%w: opencv rejected %s", cascade.ErrInvalidCascade, path)
	}
	return &haar{clf: clf}, nil
}

// DetectMultiScale runs the OpenCV scan with the same options as the
// built-in evaluator. A bad conversion panics; the engine records it as a
// stage failure.
func (h *haar) DetectMultiScale(gray *image.Gray, opts cascade.Options) []image.Rectangle {
	if gray.Bounds().Empty() {
		return nil
	}

	mat, err := grayToMat(gray)
	if err != nil {
		panic(err)
	}
	defer mat.Close()

	scale := opts.ScaleFactor
	if scale <= 1 {
		scale = cascade.DefaultScaleFactor
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clf.DetectMultiScaleWithParams(mat, scale, opts.MinNeighbors, 0, opts.MinSize, opts.MaxSize)
}

func (h *haar) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clf.Close()
}

// grayToMat copies a grayscale image into a single-channel Mat. Sub-images
// and padded strides are packed row by row.
func grayToMat(gray *image.Gray) (gocv.Mat, error) {
	b := gray.Bounds()
	width, height := b.Dx(), b.Dy()

	buf := make([]byte, width*height)
	for y := 0; y < height; y++ {
		copy(buf[y*width:(y+1)*width], gray.Pix[gray.PixOffset(b.Min.X, b.Min.Y+y):])
	}

	m, err := gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC1, buf)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to build gray Mat: %w", err)
	}
	return m, nil
}
