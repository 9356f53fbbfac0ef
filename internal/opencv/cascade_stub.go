//go:build !gocv

package opencv

import (
	"github.com/ironsheep/vision-mcp/internal/cascade"
	"github.com/ironsheep/vision-mcp/internal/detection"
)

// OpenCascade loads a haar cascade with the built-in pure-Go evaluator.
func OpenCascade(path string) (detection.Classifier, error) {
	c, err := cascade.Load(path)
	if err != nil {
		return nil, err
	}
	return c, nil
}
