package detection

import (
	"fmt"
	"sync"

	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// ObjectDetector runs the deep detector on whole frames.
//
// The underlying network is not reentrant, so forward passes are serialized;
// resizing and decoding run outside the lock.
type ObjectDetector struct {
	mu  sync.Mutex
	net Network
}

// NewObjectDetector wraps a loaded network.
func NewObjectDetector(net Network) *ObjectDetector {
	return &ObjectDetector{net: net}
}

// Detect returns every object found in the frame, including persons.
func (d *ObjectDetector) Detect(frame *imaging.Frame) ([]Detection, error) {
	size := d.net.InputSize()
	if size.X <= 0 || size.Y <= 0 {
		size.X, size.Y = DefaultInputSize, DefaultInputSize
	}

	blob, err := NewBlob(frame, size.X, size.Y)
	if err != nil {
		return nil, err
	}

	rows, err := d.forward(blob)
	if err != nil {
		return nil, fmt.Errorf("forward pass failed: %w", err)
	}

	return Decode(rows, frame.Width(), frame.Height())
}

// forward holds the lock for one pass. The deferred unlock also runs when the
// network panics.
func (d *ObjectDetector) forward(blob *Blob) ([][]float32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Forward(blob)
}

// Close releases the network.
func (d *ObjectDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
