package cascade

import (
	"image"
	"strings"
	"testing"
)

func mustParse(t *testing.T, xml string) *Cascade {
	t.Helper()
	c, err := Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return c
}

// spotImage returns a black image with a white 4x4 square at (x, y).
func spotImage(width, height, x, y int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for yy := y; yy < y+4; yy++ {
		for xx := x; xx < x+4; xx++ {
			img.Pix[yy*img.Stride+xx] = 255
		}
	}
	return img
}

func TestDetectMultiScale_FindsSpot(t *testing.T) {
	c := mustParse(t, centerSpotXML())
	gray := spotImage(64, 64, 18, 18)

	got := c.DetectMultiScale(gray, Options{ScaleFactor: 1.1, MaxSize: image.Pt(8, 8)})
	if len(got) != 1 {
		t.Fatalf("detections: got %v, want exactly one", got)
	}
	if want := image.Rect(16, 16, 24, 24); got[0] != want {
		t.Errorf("detection: got %v, want %v", got[0], want)
	}
}

func TestDetectMultiScale_SubImage(t *testing.T) {
	c := mustParse(t, centerSpotXML())
	full := spotImage(96, 96, 50, 50)
	sub := full.SubImage(image.Rect(32, 32, 96, 96)).(*image.Gray)

	got := c.DetectMultiScale(sub, Options{MaxSize: image.Pt(8, 8)})
	if len(got) != 1 || got[0] != image.Rect(16, 16, 24, 24) {
		t.Errorf("detections relative to sub-image origin: got %v", got)
	}
}

func TestDetectMultiScale_Blank(t *testing.T) {
	c := mustParse(t, centerSpotXML())
	got := c.DetectMultiScale(image.NewGray(image.Rect(0, 0, 64, 64)), Options{ScaleFactor: 1.1})
	if len(got) != 0 {
		t.Errorf("blank image: got %v", got)
	}
}

func TestDetectMultiScale_PyramidAndStep(t *testing.T) {
	c := mustParse(t, alwaysPassXML(8))
	gray := image.NewGray(image.Rect(0, 0, 32, 32))

	tests := []struct {
		name     string
		opts     Options
		want     int
		wantSize int
	}{
		// Scale 1: 12x12 positions of 8x8; scale 2: 4x4 positions of 16x16.
		{"all scales", Options{ScaleFactor: 2}, 160, 0},
		{"min size skips first scale", Options{ScaleFactor: 2, MinSize: image.Pt(10, 10)}, 16, 16},
		{"max size stops after first scale", Options{ScaleFactor: 2, MaxSize: image.Pt(8, 8)}, 144, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.DetectMultiScale(gray, tt.opts)
			if len(got) != tt.want {
				t.Fatalf("raw hits: got %d, want %d", len(got), tt.want)
			}
			if tt.wantSize == 0 {
				return
			}
			for _, r := range got {
				if r.Dx() != tt.wantSize || r.Dy() != tt.wantSize {
					t.Fatalf("hit %v: want %dx%d windows", r, tt.wantSize, tt.wantSize)
				}
			}
		})
	}
}

func TestDetectMultiScale_ScaledCoordinates(t *testing.T) {
	c := mustParse(t, alwaysPassXML(8))
	gray := image.NewGray(image.Rect(0, 0, 32, 32))

	got := c.DetectMultiScale(gray, Options{ScaleFactor: 2, MinSize: image.Pt(16, 16)})
	seen := make(map[image.Point]bool)
	for _, r := range got {
		seen[r.Min] = true
	}
	for _, v := range []int{0, 4, 8, 12} {
		if !seen[image.Pt(v, v)] {
			t.Errorf("missing window at (%d,%d)", v, v)
		}
	}
	if seen[image.Pt(2, 2)] {
		t.Error("scaled windows must land on multiples of step*factor")
	}
}

func TestDetectMultiScale_GroupsHits(t *testing.T) {
	c := mustParse(t, alwaysPassXML(24))
	gray := image.NewGray(image.Rect(0, 0, 28, 28))
	onlyFirst := image.Pt(24, 24)

	// Positions 0 and 2 on both axes give four mutually similar 24x24 hits.
	raw := c.DetectMultiScale(gray, Options{MaxSize: onlyFirst})
	if len(raw) != 4 {
		t.Fatalf("raw hits: got %d, want 4", len(raw))
	}

	grouped := c.DetectMultiScale(gray, Options{MinNeighbors: 3, MaxSize: onlyFirst})
	if len(grouped) != 1 {
		t.Fatalf("grouped: got %v, want one detection", grouped)
	}
	if want := image.Rect(1, 1, 25, 25); grouped[0] != want {
		t.Errorf("grouped: got %v, want %v", grouped[0], want)
	}

	if got := c.DetectMultiScale(gray, Options{MinNeighbors: 4, MaxSize: onlyFirst}); len(got) != 0 {
		t.Errorf("cluster of 4 must not survive MinNeighbors 4, got %v", got)
	}
}

func TestDetectMultiScale_Empty(t *testing.T) {
	c := mustParse(t, alwaysPassXML(8))
	if got := c.DetectMultiScale(image.NewGray(image.Rect(0, 0, 0, 0)), Options{}); got != nil {
		t.Errorf("empty image: got %v", got)
	}
	if got := c.DetectMultiScale(image.NewGray(image.Rect(0, 0, 6, 6)), Options{}); len(got) != 0 {
		t.Errorf("image smaller than window: got %v", got)
	}
}
