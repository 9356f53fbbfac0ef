package imaging

import (
	"image"
	"testing"
)

func TestLaplacianVariance_Flat(t *testing.T) {
	img := halfGray(16, 16, 77, 77)
	if got := LaplacianVariance(img); got != 0 {
		t.Errorf("flat image variance: got %f, want 0", got)
	}
}

func TestLaplacianVariance_DetailOrdering(t *testing.T) {
	smooth := image.NewGray(image.Rect(0, 0, 16, 16))
	checker := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			smooth.Pix[y*16+x] = uint8(x * 8)
			if (x+y)%2 == 0 {
				checker.Pix[y*16+x] = 255
			}
		}
	}

	s := LaplacianVariance(smooth)
	c := LaplacianVariance(checker)
	t.Logf("smooth=%f checker=%f", s, c)
	if c <= s {
		t.Errorf("checkerboard variance %f should exceed gradient variance %f", c, s)
	}
	if c < 500 {
		t.Errorf("checkerboard variance %f should be high", c)
	}
}

func TestLaplacianVariance_SinglePixel(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.Pix[0] = 200
	if got := LaplacianVariance(img); got != 0 {
		t.Errorf("single pixel variance: got %f, want 0", got)
	}
}

func TestLaplacianVariance_Empty(t *testing.T) {
	if got := LaplacianVariance(image.NewGray(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Errorf("empty image variance: got %f, want 0", got)
	}
}

func TestReflect101(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 3},
		{6, 5, 2},
		{-1, 1, 0},
		{1, 1, 0},
		{-1, 2, 1},
		{2, 2, 0},
	}

	for _, tt := range tests {
		if got := reflect101(tt.i, tt.n); got != tt.want {
			t.Errorf("reflect101(%d,%d): got %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clamp(%d,%d,%d): got %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
