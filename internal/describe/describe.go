package describe

import (
	"fmt"
	"strings"

	"github.com/ironsheep/vision-mcp/internal/detection"
)

// Prefix starts every description.
const Prefix = "VISION: "

// Fixed sentences used when nothing was detected.
const (
	FallbackDark   = Prefix + "Extremely dark - no objects visible"
	FallbackDim    = Prefix + "Dim lighting - no clear objects detected"
	FallbackNormal = Prefix + "No people or objects currently detected in frame"
)

// MaxObjects is the number of objects named in a description.
const MaxObjects = 5

// Object size buckets by box area in square pixels.
const (
	smallObjectArea  = 50000
	mediumObjectArea = 150000
)

// Lighting bands of the description. They differ from the scene labels on
// the bright side.
const (
	darkBrightness   = 60
	dimBrightness    = 100
	brightBrightness = 180
)

const clauseSep = " | "

// Describe renders a detection result as a single sentence.
//
// Clauses appear in this order: faces, or people when there are no faces;
// the first MaxObjects objects; the text region count when there are at
// least two; a lighting qualifier outside the normal band. A result with no
// content clauses gets a fixed fallback chosen by brightness alone.
//
// The output depends on nothing but r.
func Describe(r *detection.Result) string {
	if r == nil {
		return FallbackNormal
	}

	var clauses []string
	if len(r.Faces) > 0 {
		for _, f := range r.Faces {
			clauses = append(clauses, faceClause(f))
		}
	} else {
		for _, p := range r.People {
			clauses = append(clauses, fmt.Sprintf("Person detected (%s, %d%%)", p.Position, percent(p.Confidence)))
		}
	}

	if len(r.Objects) > 0 {
		clauses = append(clauses, objectsClause(r.Objects))
	}

	if n := len(r.TextRegions); n >= 2 {
		clauses = append(clauses, fmt.Sprintf("%d text regions", n))
	}

	if len(clauses) == 0 {
		return fallback(r.Brightness)
	}

	if q := lighting(r.Brightness); q != "" {
		clauses = append(clauses, q)
	}
	return Prefix + strings.Join(clauses, clauseSep)
}

func faceClause(f detection.FaceDetection) string {
	var attrs []string
	if f.Details.Gender != "" {
		attrs = append(attrs, f.Details.Gender)
	}
	if f.Details.AgeRange != "" {
		attrs = append(attrs, f.Details.AgeRange)
	}

	subject := "Person"
	if len(attrs) > 0 {
		subject = strings.Join(attrs, " ") + " person"
	}
	return fmt.Sprintf("%s detected (%s, confidence: %d%%)", subject, f.Position, percent(f.Confidence))
}

func objectsClause(objects []detection.Detection) string {
	n := min(len(objects), MaxObjects)
	items := make([]string, 0, n)
	for _, o := range objects[:n] {
		items = append(items, fmt.Sprintf("%s %s (%s, %d%%)", SizeLabel(o.BBox.Area()), o.Label, o.Position, percent(o.Confidence)))
	}
	return "Objects: " + strings.Join(items, "; ")
}

// SizeLabel buckets a box area into small, medium or large.
func SizeLabel(area int) string {
	switch {
	case area < smallObjectArea:
		return "small"
	case area < mediumObjectArea:
		return "medium"
	default:
		return "large"
	}
}

func lighting(brightness float64) string {
	switch {
	case brightness < darkBrightness:
		return "Very dark lighting"
	case brightness < dimBrightness:
		return "Dim lighting"
	case brightness > brightBrightness:
		return "Bright lighting"
	default:
		return ""
	}
}

func fallback(brightness float64) string {
	switch {
	case brightness < darkBrightness:
		return FallbackDark
	case brightness < dimBrightness:
		return FallbackDim
	default:
		return FallbackNormal
	}
}

// percent truncates a confidence to a whole percentage.
func percent(confidence float64) int {
	return int(confidence * 100)
}
