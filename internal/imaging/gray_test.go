package imaging

import (
	"image"
	"math"
	"testing"
)

func TestLuma(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{255, 0, 0, 76},
		{0, 255, 0, 150},
		{0, 0, 255, 29},
		{128, 128, 128, 128},
	}

	for _, tt := range tests {
		if got := Luma(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("Luma(%d,%d,%d): got %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestFrame_Gray(t *testing.T) {
	f := solidFrame(t, 4, 3, 255, 0, 0)
	gray := f.Gray()
	if gray.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("Bounds: got %v", gray.Bounds())
	}
	for _, v := range gray.Pix {
		if v != 76 {
			t.Fatalf("gray value: got %d, want 76", v)
		}
	}
}

// halfGray returns a width x height image whose left half is lo and right
// half is hi.
func halfGray(width, height int, lo, hi uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Pix[y*img.Stride+x] = lo
			} else {
				img.Pix[y*img.Stride+x] = hi
			}
		}
	}
	return img
}

func TestMeanIntensity(t *testing.T) {
	got, err := MeanIntensity(halfGray(4, 2, 0, 255))
	if err != nil {
		t.Fatalf("MeanIntensity failed: %v", err)
	}
	if math.Abs(got-127.5) > 1e-9 {
		t.Errorf("MeanIntensity: got %f, want 127.5", got)
	}
}

func TestMeanIntensity_SubImage(t *testing.T) {
	img := halfGray(4, 2, 10, 250)
	sub := img.SubImage(image.Rect(2, 0, 4, 2)).(*image.Gray)
	got, err := MeanIntensity(sub)
	if err != nil {
		t.Fatalf("MeanIntensity failed: %v", err)
	}
	if got != 250 {
		t.Errorf("MeanIntensity of right half: got %f, want 250", got)
	}
}

func TestMeanIntensity_Empty(t *testing.T) {
	if _, err := MeanIntensity(image.NewGray(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("MeanIntensity should fail for an empty image")
	}
}

func TestOtsuThreshold(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi uint8
		minT   uint8
		maxT   uint8
	}{
		{"black/white", 0, 255, 0, 254},
		{"dark/light", 40, 200, 40, 199},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OtsuThreshold(halfGray(10, 10, tt.lo, tt.hi))
			if got < tt.minT || got > tt.maxT {
				t.Errorf("threshold %d outside [%d,%d]", got, tt.minT, tt.maxT)
			}
			// The threshold must separate the two classes.
			if !(tt.lo <= got && got < tt.hi) {
				t.Errorf("threshold %d does not separate %d and %d", got, tt.lo, tt.hi)
			}
		})
	}
}

func TestOtsuThreshold_Uniform(t *testing.T) {
	if got := OtsuThreshold(halfGray(8, 8, 90, 90)); got != 0 {
		t.Errorf("uniform image threshold: got %d, want 0", got)
	}
}
