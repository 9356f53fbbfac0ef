package detection

import (
	"image"

	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// The attribute heuristics below read raw pixel statistics. They are
// placeholders with no training behind them, and their thresholds are fixed.

// Attribute stage names, as recorded in diagnostics.
const (
	AttributeGender = "attributes.gender"
	AttributeAge    = "attributes.age"
	AttributeHair   = "attributes.hair"
)

// Analyze derives gender, age bracket and hair color for one face box.
//
// Every field runs as its own stage. A field that fails or panics is left
// empty and reported in the returned diagnostics; a field that cannot be
// computed (for example a hair strip with no rows) is left empty silently.
// Either way the other fields are unaffected.
func Analyze(frame *imaging.Frame, gray *image.Gray, face BBox) (Details, []Diagnostic) {
	var (
		d     Details
		diags []Diagnostic
	)

	gender := Run(AttributeGender, func() (string, error) {
		return GuessGender(face), nil
	})
	d.Gender, diags = gender.Value, appendDiagnostic(diags, gender)

	age := Run(AttributeAge, func() (string, error) {
		roi := frame.Clip(face.Rect())
		if roi.Empty() {
			return "", nil
		}
		return AgeRange(imaging.LaplacianVariance(imaging.CropGray(gray, roi))), nil
	})
	d.AgeRange, diags = age.Value, appendDiagnostic(diags, age)

	hair := Run(AttributeHair, func() (hairReading, error) {
		r, g, b, ok := imaging.MeanRGB(frame, HairStrip(frame, face))
		if !ok {
			return hairReading{}, nil
		}
		return hairReading{color: HairColor(r, g, b), tone: imaging.Hex(r, g, b)}, nil
	})
	d.HairColor, d.HairTone = hair.Value.color, hair.Value.tone
	diags = appendDiagnostic(diags, hair)

	return d, diags
}

type hairReading struct {
	color string
	tone  string
}

func appendDiagnostic[T any](diags []Diagnostic, out Outcome[T]) []Diagnostic {
	if d, failed := out.Diagnostic(); failed {
		return append(diags, d)
	}
	return diags
}

// GuessGender applies the aspect-ratio rule: boxes more than 1.3 times as
// tall as wide are "male", all others "female". A box with no width counts
// as square.
func GuessGender(face BBox) string {
	aspect := 1.0
	if face.W > 0 {
		aspect = float64(face.H) / float64(face.W)
	}
	if aspect > 1.3 {
		return "male"
	}
	return "female"
}

// AgeRange buckets a Laplacian variance: above 500 is "young adult", above
// 300 "middle-aged", anything else "senior".
func AgeRange(laplacianVar float64) string {
	switch {
	case laplacianVar > 500:
		return "young adult"
	case laplacianVar > 300:
		return "middle-aged"
	default:
		return "senior"
	}
}

// HairColor buckets a mean RGB color. Rules are tried in order and the first
// match wins.
func HairColor(r, g, b float64) string {
	switch {
	case r > 150 && g < 100 && b < 100:
		return "red/auburn"
	case r > 200 && g > 180 && b < 150:
		return "blonde"
	case r < 80 && g < 80 && b < 80:
		return "dark/black"
	case r > 100 && g > 80 && b > 60:
		return "brown"
	default:
		return "dark"
	}
}

// HairStrip returns the top 30% of a face box, clipped to the frame. The
// result is empty when the strip has no rows.
func HairStrip(frame *imaging.Frame, face BBox) image.Rectangle {
	roi := frame.Clip(face.Rect())
	roi.Max.Y = min(roi.Max.Y, roi.Min.Y+int(float64(face.H)*0.3))
	return roi
}
