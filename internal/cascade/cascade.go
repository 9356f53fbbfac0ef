package cascade

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidCascade is returned when a cascade file cannot be interpreted.
var ErrInvalidCascade = errors.New("invalid cascade")

// stageThresholdEps loosens every stage threshold slightly, as the trainer
// expects at evaluation time.
const stageThresholdEps = 1e-5

// Cascade is a boosted Haar classifier cascade.
//
// A Cascade is read-only after loading and safe for concurrent use by
// multiple goroutines.
type Cascade struct {
	window    image.Point
	stages    []stage
	features  []feature
	hasTilted bool
}

type stage struct {
	threshold float64
	trees     []tree
}

// tree is one weak classifier. Child indices greater than zero point at
// another node of the same tree; zero or negative values select leaf -idx.
type tree struct {
	nodes  []node
	leaves []float64
}

type node struct {
	left, right int
	feature     int
	threshold   float64
}

type weightedRect struct {
	x, y, w, h int
	weight     float64
}

type feature struct {
	rects  []weightedRect
	tilted bool
}

// Load reads a cascade from an XML file.
func Load(path string) (*Cascade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cascade: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a BOOST/HAAR cascade in the XML layout produced by
// opencv_traincascade.
//
// # Errors
//
// Every structural problem is reported as ErrInvalidCascade: the legacy
// pre-2.4 layout, non-Haar features, malformed numbers, node or feature
// indices out of range, and feature rectangles outside the detection window.
func Parse(r io.Reader) (*Cascade, error) {
	var doc xmlStorage
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCascade, err)
	}
	if doc.Cascade == nil {
		return nil, fmt.Errorf("%w: missing cascade element (legacy format is not supported)", ErrInvalidCascade)
	}
	x := doc.Cascade

	if t := strings.TrimSpace(x.StageType); t != "" && t != "BOOST" {
		return nil, fmt.Errorf("%w: unsupported stage type %q", ErrInvalidCascade, t)
	}
	if t := strings.TrimSpace(x.FeatureType); t != "HAAR" {
		return nil, fmt.Errorf("%w: unsupported feature type %q", ErrInvalidCascade, t)
	}

	width, err := parseInt(x.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: width: %v", ErrInvalidCascade, err)
	}
	height, err := parseInt(x.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: height: %v", ErrInvalidCascade, err)
	}
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: window %dx%d too small", ErrInvalidCascade, width, height)
	}

	c := &Cascade{window: image.Pt(width, height)}

	for i, xf := range x.Features {
		feat, err := parseFeature(xf, width, height)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %v", ErrInvalidCascade, i, err)
		}
		c.hasTilted = c.hasTilted || feat.tilted
		c.features = append(c.features, feat)
	}

	if len(x.Stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidCascade)
	}
	for si, xs := range x.Stages {
		thr, err := parseFloat(xs.StageThreshold)
		if err != nil {
			return nil, fmt.Errorf("%w: stage %d threshold: %v", ErrInvalidCascade, si, err)
		}
		st := stage{threshold: thr - stageThresholdEps}
		for wi, xw := range xs.WeakClassifiers {
			t, err := parseTree(xw, len(c.features))
			if err != nil {
				return nil, fmt.Errorf("%w: stage %d classifier %d: %v", ErrInvalidCascade, si, wi, err)
			}
			st.trees = append(st.trees, t)
		}
		c.stages = append(c.stages, st)
	}

	return c, nil
}

// WindowSize returns the size of the window the cascade was trained on.
func (c *Cascade) WindowSize() image.Point {
	return c.window
}

// StageCount returns the number of stages.
func (c *Cascade) StageCount() int {
	return len(c.stages)
}

func parseTree(xw xmlClassifier, nfeatures int) (tree, error) {
	vals := strings.Fields(xw.InternalNodes)
	if len(vals) == 0 || len(vals)%4 != 0 {
		return tree{}, fmt.Errorf("internal nodes must come in groups of 4, got %d values", len(vals))
	}

	var t tree
	for i := 0; i < len(vals); i += 4 {
		left, err1 := strconv.Atoi(vals[i])
		right, err2 := strconv.Atoi(vals[i+1])
		feat, err3 := strconv.Atoi(vals[i+2])
		thr, err4 := strconv.ParseFloat(vals[i+3], 64)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			return tree{}, err
		}
		if feat < 0 || feat >= nfeatures {
			return tree{}, fmt.Errorf("feature index %d out of range", feat)
		}
		t.nodes = append(t.nodes, node{left: left, right: right, feature: feat, threshold: thr})
	}

	for _, s := range strings.Fields(xw.LeafValues) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return tree{}, err
		}
		t.leaves = append(t.leaves, v)
	}

	for _, n := range t.nodes {
		for _, child := range []int{n.left, n.right} {
			if child > 0 && child >= len(t.nodes) {
				return tree{}, fmt.Errorf("node index %d out of range", child)
			}
			if child <= 0 && -child >= len(t.leaves) {
				return tree{}, fmt.Errorf("leaf index %d out of range", -child)
			}
		}
	}

	return t, nil
}

func parseFeature(xf xmlFeature, width, height int) (feature, error) {
	var feat feature
	if s := strings.TrimSpace(xf.Tilted); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return feature{}, err
		}
		feat.tilted = v != 0
	}

	if len(xf.Rects) == 0 || len(xf.Rects) > 3 {
		return feature{}, fmt.Errorf("expected 1 to 3 rects, got %d", len(xf.Rects))
	}

	for _, s := range xf.Rects {
		vals := strings.Fields(s)
		if len(vals) != 5 {
			return feature{}, fmt.Errorf("rect needs 5 values, got %d", len(vals))
		}
		var r weightedRect
		var errs [5]error
		r.x, errs[0] = strconv.Atoi(vals[0])
		r.y, errs[1] = strconv.Atoi(vals[1])
		r.w, errs[2] = strconv.Atoi(vals[2])
		r.h, errs[3] = strconv.Atoi(vals[3])
		r.weight, errs[4] = parseFloat(vals[4])
		if err := errors.Join(errs[:]...); err != nil {
			return feature{}, err
		}
		if !rectFits(r, feat.tilted, width, height) {
			return feature{}, fmt.Errorf("rect %d %d %d %d outside %dx%d window", r.x, r.y, r.w, r.h, width, height)
		}
		feat.rects = append(feat.rects, r)
	}

	return feat, nil
}

// rectFits reports whether every integral-image corner the rect touches lies
// inside the window.
func rectFits(r weightedRect, tilted bool, width, height int) bool {
	if r.w < 0 || r.h < 0 || r.x < 0 || r.y < 0 {
		return false
	}
	if tilted {
		return r.x-r.h >= 0 && r.x+r.w <= width && r.y+r.w+r.h <= height
	}
	return r.x+r.w <= width && r.y+r.h <= height
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
