package detection

import (
	"image"

	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// Scene labels.
const (
	SceneVeryDark     = "very dark"
	SceneDimIndoor    = "dim indoor"
	SceneVeryBright   = "very bright"
	SceneNormalIndoor = "normal indoor"
	SceneUnknown      = "unknown"
)

// SceneLabel buckets a mean brightness: below 60 is very dark, below 100 dim
// indoor, above 200 very bright, anything else normal indoor.
func SceneLabel(brightness float64) string {
	switch {
	case brightness < 60:
		return SceneVeryDark
	case brightness < 100:
		return SceneDimIndoor
	case brightness > 200:
		return SceneVeryBright
	default:
		return SceneNormalIndoor
	}
}

// ClassifyScene returns the scene label and mean brightness of a grayscale
// frame.
func ClassifyScene(gray *image.Gray) (string, float64, error) {
	brightness, err := imaging.MeanIntensity(gray)
	if err != nil {
		return SceneUnknown, NeutralBrightness, err
	}
	return SceneLabel(brightness), brightness, nil
}
