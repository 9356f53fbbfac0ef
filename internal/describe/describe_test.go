package describe

import (
	"strings"
	"testing"

	"github.com/ironsheep/vision-mcp/internal/detection"
)

func face(pos detection.Position, conf float64, d detection.Details) detection.FaceDetection {
	return detection.FaceDetection{
		Detection: detection.Detection{Label: detection.LabelPerson, Position: pos, Confidence: conf},
		Details:   d,
	}
}

func object(label string, w, h int, pos detection.Position, conf float64) detection.Detection {
	return detection.Detection{
		Label:      label,
		BBox:       detection.BBox{W: w, H: h},
		Position:   pos,
		Confidence: conf,
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name   string
		result *detection.Result
		want   string
	}{
		{
			name:   "black frame",
			result: &detection.Result{Brightness: 0},
			want:   FallbackDark,
		},
		{
			name:   "dim empty frame",
			result: &detection.Result{Brightness: 80},
			want:   FallbackDim,
		},
		{
			name:   "bright empty frame",
			result: &detection.Result{Brightness: 220},
			want:   FallbackNormal,
		},
		{
			name: "face with attributes",
			result: &detection.Result{
				Faces:      []detection.FaceDetection{face(detection.PositionCenter, 0.9, detection.Details{Gender: "male", AgeRange: "young adult", HairColor: "brown"})},
				Brightness: 150,
			},
			want: "VISION: male young adult person detected (center, confidence: 90%)",
		},
		{
			name: "face without attributes",
			result: &detection.Result{
				Faces:      []detection.FaceDetection{face(detection.PositionLeft, 0.7, detection.Details{})},
				Brightness: 150,
			},
			want: "VISION: Person detected (left, confidence: 70%)",
		},
		{
			name: "faces take priority over people",
			result: &detection.Result{
				Faces:      []detection.FaceDetection{face(detection.PositionRight, 0.7, detection.Details{Gender: "female"})},
				People:     []detection.Detection{object("person", 100, 200, detection.PositionLeft, 0.8)},
				Brightness: 150,
			},
			want: "VISION: female person detected (right, confidence: 70%)",
		},
		{
			name: "people when no faces",
			result: &detection.Result{
				People: []detection.Detection{
					object("person", 100, 200, detection.PositionLeft, 0.8),
					object("person", 100, 200, detection.PositionRight, 0.6),
				},
				Brightness: 150,
			},
			want: "VISION: Person detected (left, 80%) | Person detected (right, 60%)",
		},
		{
			name: "objects with sizes",
			result: &detection.Result{
				Objects: []detection.Detection{
					object("cup", 100, 100, detection.PositionLeft, 0.85),
					object("laptop", 250, 200, detection.PositionCenter, 0.6),
					object("couch", 500, 300, detection.PositionRight, 0.5),
				},
				Brightness: 150,
			},
			want: "VISION: Objects: small cup (left, 85%); medium laptop (center, 60%); large couch (right, 50%)",
		},
		{
			name: "text regions and bright lighting",
			result: &detection.Result{
				Objects:     []detection.Detection{object("book", 10, 10, detection.PositionCenter, 0.5)},
				TextRegions: make([]detection.TextRegion, 3),
				Brightness:  190,
			},
			want: "VISION: Objects: small book (center, 50%) | 3 text regions | Bright lighting",
		},
		{
			name: "single text region is not mentioned",
			result: &detection.Result{
				TextRegions: make([]detection.TextRegion, 1),
				Brightness:  150,
			},
			want: FallbackNormal,
		},
		{
			name: "dim lighting qualifier",
			result: &detection.Result{
				People:     []detection.Detection{object("person", 50, 100, detection.PositionCenter, 0.6)},
				Brightness: 70,
			},
			want: "VISION: Person detected (center, 60%) | Dim lighting",
		},
		{
			name: "very dark lighting qualifier",
			result: &detection.Result{
				TextRegions: make([]detection.TextRegion, 2),
				Brightness:  30,
			},
			want: "VISION: 2 text regions | Very dark lighting",
		},
		{
			name: "scene bright band is not a lighting band",
			result: &detection.Result{
				TextRegions: make([]detection.TextRegion, 2),
				Brightness:  180,
			},
			want: "VISION: 2 text regions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.result); got != tt.want {
				t.Errorf("Describe:\n got  %q\n want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe_LightingBoundaries(t *testing.T) {
	tests := []struct {
		brightness float64
		want       string
	}{
		{59, "VISION: 2 text regions | Very dark lighting"},
		{60, "VISION: 2 text regions | Dim lighting"},
		{99, "VISION: 2 text regions | Dim lighting"},
		{100, "VISION: 2 text regions"},
		{180, "VISION: 2 text regions"},
		{181, "VISION: 2 text regions | Bright lighting"},
		{200, "VISION: 2 text regions | Bright lighting"},
		{201, "VISION: 2 text regions | Bright lighting"},
	}

	for _, tt := range tests {
		r := &detection.Result{TextRegions: make([]detection.TextRegion, 2), Brightness: tt.brightness}
		if got := Describe(r); got != tt.want {
			t.Errorf("brightness %v: got %q, want %q", tt.brightness, got, tt.want)
		}
	}
}

func TestDescribe_FallbackBoundaries(t *testing.T) {
	tests := []struct {
		brightness float64
		want       string
	}{
		{59, FallbackDark},
		{60, FallbackDim},
		{99, FallbackDim},
		{100, FallbackNormal},
		{180, FallbackNormal},
		// Bright frames with nothing in them get the plain fallback, never
		// a lone lighting clause.
		{181, FallbackNormal},
		{255, FallbackNormal},
	}

	for _, tt := range tests {
		if got := Describe(&detection.Result{Brightness: tt.brightness}); got != tt.want {
			t.Errorf("brightness %v: got %q, want %q", tt.brightness, got, tt.want)
		}
	}
}

func TestDescribe_FirstFiveObjects(t *testing.T) {
	labels := []string{"cup", "book", "chair", "tv", "mouse", "clock", "vase"}
	r := &detection.Result{Brightness: 150}
	for _, l := range labels {
		r.Objects = append(r.Objects, object(l, 10, 10, detection.PositionCenter, 0.5))
	}

	got := Describe(r)
	for _, l := range labels[:MaxObjects] {
		if !strings.Contains(got, " "+l+" ") {
			t.Errorf("missing %q in %q", l, got)
		}
	}
	for _, l := range labels[MaxObjects:] {
		if strings.Contains(got, l) {
			t.Errorf("%q should be omitted from %q", l, got)
		}
	}
}

func TestDescribe_Idempotent(t *testing.T) {
	r := &detection.Result{
		Faces:       []detection.FaceDetection{face(detection.PositionCenter, 0.9, detection.Details{Gender: "male"})},
		Objects:     []detection.Detection{object("cup", 10, 10, detection.PositionLeft, 0.5)},
		TextRegions: make([]detection.TextRegion, 2),
		Brightness:  40,
	}

	first := Describe(r)
	for i := 0; i < 5; i++ {
		if got := Describe(r); got != first {
			t.Fatalf("call %d: got %q, want %q", i, got, first)
		}
	}
}

func TestDescribe_NilAndEmpty(t *testing.T) {
	if got := Describe(nil); got != FallbackNormal {
		t.Errorf("nil result: got %q", got)
	}
	if got := Describe(detection.EmptyResult()); got != FallbackNormal {
		t.Errorf("empty result: got %q", got)
	}
}

func TestSizeLabel(t *testing.T) {
	tests := []struct {
		area int
		want string
	}{
		{0, "small"},
		{49999, "small"},
		{50000, "medium"},
		{149999, "medium"},
		{150000, "large"},
		{640 * 480, "large"},
	}

	for _, tt := range tests {
		if got := SizeLabel(tt.area); got != tt.want {
			t.Errorf("SizeLabel(%d): got %q, want %q", tt.area, got, tt.want)
		}
	}
}

func TestInstruction(t *testing.T) {
	got := Instruction("VISION: 2 text regions")

	if !strings.HasPrefix(got, "Current camera view analysis: VISION: 2 text regions. CRITICAL:") {
		t.Errorf("unexpected prefix: %q", got)
	}
	for _, phrase := range []string{
		"Do NOT invent, assume, or hallucinate",
		"simply describe the lighting and colors",
		"Never make up specific measurements or object names.",
	} {
		if !strings.Contains(got, phrase) {
			t.Errorf("missing %q", phrase)
		}
	}
}
