package vision

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/vision-mcp/internal/config"
	"github.com/ironsheep/vision-mcp/internal/describe"
	"github.com/ironsheep/vision-mcp/internal/detection"
	"github.com/ironsheep/vision-mcp/internal/imaging"
)

// Capability names reported by Capabilities.
const (
	CapabilityObjects = "object detection"
	CapabilityFaces   = "face detection"
	CapabilityPersons = "person analysis"
	CapabilityScene   = "scene recognition"
)

// Stage names used in logs and diagnostics. Face attributes report under
// the detection.Attribute* names.
const (
	StageFaces   = "faces"
	StageObjects = "objects"
	StageBodies  = "bodies"
	StageText    = "text"
	StageScene   = "scene"
)

// Engine analyzes frames.
type Engine struct {
	log      *logrus.Logger
	cascades *detection.CascadeDetector
	objects  objectDetector

	closeOnce sync.Once
	closeErr  error
}

// New builds an engine from loaded models. The face cascade is required.
func New(models *Models, logger *logrus.Logger) (*Engine, error) {
	if models == nil || models.Face == nil {
		return nil, fmt.Errorf("%w: face cascade missing", ErrModelLoad)
	}

	e := &Engine{
		log: logger,
		cascades: &detection.CascadeDetector{
			Face: models.Face,
			Eye:  models.Eye,
			Body: models.Body,
		},
		objects: cascadeOnly{},
	}
	if models.Network != nil {
		e.objects = withDeep{det: detection.NewObjectDetector(models.Network)}
	}

	logger.Infof("Vision engine initialized with %s", strings.Join(e.Capabilities(), ", "))
	return e, nil
}

// Open loads models from the configuration and builds an engine.
func Open(cfg *config.Config, backend Backend, logger *logrus.Logger) (*Engine, error) {
	models, err := LoadModels(cfg, backend, logger)
	if err != nil {
		return nil, err
	}
	return New(models, logger)
}

// DeepDetectorAvailable reports whether the deep object detector runs.
func (e *Engine) DeepDetectorAvailable() bool {
	return e.objects.available()
}

// Capabilities lists the enabled features.
func (e *Engine) Capabilities() []string {
	var caps []string
	if e.objects.available() {
		caps = append(caps, CapabilityObjects)
	}
	return append(caps, CapabilityFaces, CapabilityPersons, CapabilityScene)
}

// Detect analyzes one frame under a fresh frame id.
func (e *Engine) Detect(frame *imaging.Frame) *detection.Result {
	return e.DetectFrame(uuid.NewString(), frame)
}

// DetectFrame analyzes one frame. frameID only tags log lines.
//
// An empty frame yields detection.EmptyResult. Otherwise every list in the
// result is non-nil.
func (e *Engine) DetectFrame(frameID string, frame *imaging.Frame) *detection.Result {
	log := e.log.WithField("frame_id", frameID)

	if frame.Empty() {
		log.Debug("Empty frame, returning neutral result")
		res := detection.EmptyResult()
		res.DeepDetector = e.objects.available()
		return res
	}

	gray := frame.Gray()
	res := detection.EmptyResult()
	res.DeepDetector = e.objects.available()

	faces := detection.Run(StageFaces, func() ([]detection.FaceDetection, error) {
		return e.cascades.DetectFaces(gray), nil
	})
	if record(log, res, faces) {
		for i := range faces.Value {
			e.analyzeFace(log, res, frame, gray, &faces.Value[i])
		}
		res.Faces = faces.Value
	}

	if e.objects.available() {
		objs := detection.Run(StageObjects, func() ([]detection.Detection, error) {
			return e.objects.detect(frame)
		})
		if record(log, res, objs) {
			res.People, res.Objects = detection.SplitPeople(objs.Value)
		}
	} else if len(res.Faces) == 0 {
		bodies := detection.Run(StageBodies, func() ([]detection.Detection, error) {
			return e.cascades.DetectBodies(gray), nil
		})
		if record(log, res, bodies) {
			res.People = bodies.Value
		}
	}

	text := detection.Run(StageText, func() ([]detection.TextRegion, error) {
		return detection.FindTextRegions(gray), nil
	})
	if record(log, res, text) {
		res.TextRegions = text.Value
	}

	scene := detection.Run(StageScene, func() (sceneReading, error) {
		label, brightness, err := detection.ClassifyScene(gray)
		return sceneReading{label: label, brightness: brightness}, err
	})
	if record(log, res, scene) {
		res.Scene = scene.Value.label
		res.Brightness = scene.Value.brightness
	}

	log.WithFields(logrus.Fields{
		"faces":       len(res.Faces),
		"people":      len(res.People),
		"objects":     len(res.Objects),
		"text":        len(res.TextRegions),
		"scene":       res.Scene,
		"brightness":  fmt.Sprintf("%.1f", res.Brightness),
		"diagnostics": len(res.Diagnostics),
	}).Debug("Frame analyzed")

	return res
}

type sceneReading struct {
	label      string
	brightness float64
}

func (e *Engine) analyzeFace(log *logrus.Entry, res *detection.Result, frame *imaging.Frame, gray *image.Gray, face *detection.FaceDetection) {
	details, diags := detection.Analyze(frame, gray, face.BBox)
	face.Details = details
	for _, d := range diags {
		res.Diagnostics = append(res.Diagnostics, d)
		log.WithFields(logrus.Fields{
			"stage": d.Stage,
			"face":  face.BBox,
			"error": d.Error,
		}).Warn("Face attribute failed")
	}
}

// record appends the diagnostic of a failed stage and logs it. It reports
// whether the stage succeeded.
func record[T any](log *logrus.Entry, res *detection.Result, out detection.Outcome[T]) bool {
	d, failed := out.Diagnostic()
	if !failed {
		return true
	}
	res.Diagnostics = append(res.Diagnostics, d)
	entry := log.WithField("stage", d.Stage).WithError(out.Err)
	if errors.Is(out.Err, detection.ErrStagePanic) {
		entry.Error("Detection stage panicked")
	} else {
		entry.Warn("Detection stage failed")
	}
	return false
}

// Describe analyzes a frame and renders the result as one sentence.
func (e *Engine) Describe(frame *imaging.Frame) string {
	return describe.Describe(e.Detect(frame))
}

// Close releases the deep network and any native cascades. It is safe to
// call more than once.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		e.closeErr = errors.Join(
			e.objects.close(),
			closeClassifiers(e.cascades.Face, e.cascades.Eye, e.cascades.Body),
		)
	})
	return e.closeErr
}
