package cascade

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testCascadeXML renders a one-stage, one-stump cascade in the trainer's
// XML layout.
func testCascadeXML(width, height int, stageThreshold, nodeThreshold float64, leafLo, leafHi float64, rects []string, tilted bool) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n<opencv_storage>\n<cascade type_id=\"opencv-cascade-classifier\">")
	b.WriteString("<stageType>BOOST</stageType>\n  <featureType>HAAR</featureType>\n")
	fmt.Fprintf(&b, "  <height>%d</height>\n  <width>%d</width>\n", height, width)
	b.WriteString("  <stageParams>\n    <maxWeakCount>1</maxWeakCount></stageParams>\n")
	b.WriteString("  <featureParams>\n    <maxCatCount>0</maxCatCount></featureParams>\n")
	b.WriteString("  <stageNum>1</stageNum>\n  <stages>\n    <!-- stage 0 -->\n    <_>\n")
	fmt.Fprintf(&b, "      <maxWeakCount>1</maxWeakCount>\n      <stageThreshold>%g</stageThreshold>\n", stageThreshold)
	b.WriteString("      <weakClassifiers>\n        <_>\n")
	fmt.Fprintf(&b, "          <internalNodes>\n            0 -1 0 %g</internalNodes>\n", nodeThreshold)
	fmt.Fprintf(&b, "          <leafValues>\n            %g %g</leafValues></_></weakClassifiers></_></stages>\n", leafLo, leafHi)
	b.WriteString("  <features>\n    <_>\n      <rects>\n")
	for _, r := range rects {
		fmt.Fprintf(&b, "        <_>\n          %s</_>\n", r)
	}
	b.WriteString("      </rects>")
	if tilted {
		b.WriteString("\n      <tilted>1</tilted>")
	}
	b.WriteString("</_></features></cascade>\n</opencv_storage>\n")
	return b.String()
}

// centerSpotXML detects an 8x8 window whose 4x4 center is much brighter than
// its surroundings.
func centerSpotXML() string {
	return testCascadeXML(8, 8, 0, 0.5, -1, 1, []string{"0 0 8 8 -0.25", "2 2 4 4 1."}, false)
}

// alwaysPassXML accepts every window of a win x win cascade.
func alwaysPassXML(win int) string {
	return testCascadeXML(win, win, -1, 0, 0, 0, []string{fmt.Sprintf("0 0 %d %d -1.", win, win)}, false)
}

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(centerSpotXML()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.WindowSize().X != 8 || c.WindowSize().Y != 8 {
		t.Errorf("WindowSize: got %v, want (8,8)", c.WindowSize())
	}
	if c.StageCount() != 1 {
		t.Errorf("StageCount: got %d, want 1", c.StageCount())
	}
	if len(c.features) != 1 || len(c.features[0].rects) != 2 {
		t.Fatalf("features: got %+v", c.features)
	}
	if c.features[0].rects[1].weight != 1 {
		t.Errorf("weight \"1.\" parsed as %f", c.features[0].rects[1].weight)
	}
	if c.hasTilted {
		t.Error("upright cascade reported tilted features")
	}
	st := c.stages[0]
	if st.threshold != -stageThresholdEps {
		t.Errorf("stage threshold: got %g, want %g", st.threshold, -stageThresholdEps)
	}
	n := st.trees[0].nodes[0]
	if n.left != 0 || n.right != -1 || n.feature != 0 || n.threshold != 0.5 {
		t.Errorf("node: got %+v", n)
	}
}

func TestParse_Tilted(t *testing.T) {
	xml := testCascadeXML(8, 8, 0, 0.5, -1, 1, []string{"4 0 3 3 -1.", "4 1 1 1 9."}, true)
	c, err := Parse(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !c.hasTilted || !c.features[0].tilted {
		t.Error("tilted feature not recognised")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"not xml", "this is not a cascade"},
		{"legacy layout", `<?xml version="1.0"?><opencv_storage><haarcascade_frontalface type_id="opencv-haar-classifier"><size>24 24</size></haarcascade_frontalface></opencv_storage>`},
		{"lbp features", strings.Replace(centerSpotXML(), "<featureType>HAAR", "<featureType>LBP", 1)},
		{"bad width", strings.Replace(centerSpotXML(), "<width>8", "<width>x", 1)},
		{"tiny window", testCascadeXML(2, 2, 0, 0.5, -1, 1, []string{"0 0 2 2 -1."}, false)},
		{"rect outside window", testCascadeXML(8, 8, 0, 0.5, -1, 1, []string{"4 4 8 8 -1."}, false)},
		{"tilted rect outside window", testCascadeXML(8, 8, 0, 0.5, -1, 1, []string{"1 0 3 3 -1."}, true)},
		{"rect with four values", testCascadeXML(8, 8, 0, 0.5, -1, 1, []string{"0 0 8 8"}, false)},
		{"feature index out of range", strings.Replace(centerSpotXML(), "0 -1 0 0.5", "0 -1 3 0.5", 1)},
		{"leaf index out of range", strings.Replace(centerSpotXML(), "0 -1 0 0.5", "0 -2 0 0.5", 1)},
		{"bad node count", strings.Replace(centerSpotXML(), "0 -1 0 0.5", "0 -1 0", 1)},
		{"no stages", strings.NewReplacer("<stages>", "<unused>", "</stages>", "</unused>").Replace(centerSpotXML())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.xml))
			if !errors.Is(err, ErrInvalidCascade) {
				t.Errorf("got %v, want ErrInvalidCascade", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spot.xml")
	if err := os.WriteFile(path, []byte(centerSpotXML()), 0o644); err != nil {
		t.Fatalf("failed to write cascade: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.StageCount() != 1 {
		t.Errorf("StageCount: got %d", c.StageCount())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}
