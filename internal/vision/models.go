package vision

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/vision-mcp/internal/config"
	"github.com/ironsheep/vision-mcp/internal/detection"
)

var (
	// ErrModelLoad is returned when a mandatory cascade cannot be loaded.
	ErrModelLoad = errors.New("failed to load model")

	// ErrOptionalModelUnavailable marks a deep detector that could not be
	// opened. It disables the capability instead of failing construction.
	ErrOptionalModelUnavailable = errors.New("optional model unavailable")
)

// CascadeOpener loads one cascade classifier file.
type CascadeOpener func(path string) (detection.Classifier, error)

// NetworkOpener opens a deep network from darknet weights and cfg files.
type NetworkOpener func(weights, cfg string) (detection.Network, error)

// Backend opens model files. Cascade is required; a nil Network skips the
// deep detector.
type Backend struct {
	Cascade CascadeOpener
	Network NetworkOpener
}

// Models are the loaded detector artifacts. They are never modified after
// loading.
type Models struct {
	Face detection.Classifier
	Eye  detection.Classifier
	Body detection.Classifier

	// Network is nil when the deep detector is unavailable.
	Network detection.Network

	// DeepErr records why Network is nil, wrapping
	// ErrOptionalModelUnavailable.
	DeepErr error
}

// LoadModels loads the three cascades and tries to open the deep detector.
//
// A missing or invalid cascade fails with ErrModelLoad. A deep detector that
// cannot be opened is logged once as a warning and recorded in DeepErr.
func LoadModels(cfg *config.Config, backend Backend, logger *logrus.Logger) (*Models, error) {
	if backend.Cascade == nil {
		return nil, fmt.Errorf("%w: no cascade backend", ErrModelLoad)
	}
	m := &Models{}

	cascades := []struct {
		name string
		path string
		dst  *detection.Classifier
	}{
		{"face", cfg.Cascades.FacePath(), &m.Face},
		{"eye", cfg.Cascades.EyePath(), &m.Eye},
		{"body", cfg.Cascades.BodyPath(), &m.Body},
	}
	for _, c := range cascades {
		loaded, err := backend.Cascade(c.path)
		if err != nil {
			closeClassifiers(m.Face, m.Eye, m.Body)
			return nil, fmt.Errorf("%w: %s cascade: %w", ErrModelLoad, c.name, err)
		}
		*c.dst = loaded
		logger.WithFields(logrus.Fields{
			"cascade": c.name,
			"path":    c.path,
		}).Debug("Loaded cascade")
	}

	net, err := openDeep(cfg.Deep, backend.Network)
	if err != nil {
		logger.WithError(err).Warn("Deep object detector unavailable, continuing with cascade detectors only")
		m.DeepErr = err
		return m, nil
	}
	m.Network = net
	return m, nil
}

// closeClassifiers releases classifiers that hold native resources.
func closeClassifiers(classifiers ...detection.Classifier) error {
	var errs []error
	for _, c := range classifiers {
		if closer, ok := c.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}

func openDeep(cfg config.DeepConfig, open NetworkOpener) (detection.Network, error) {
	if open == nil {
		return nil, fmt.Errorf("%w: no network backend", ErrOptionalModelUnavailable)
	}

	weights, cfgPath := cfg.WeightsPath(), cfg.ConfigPath()
	for _, path := range []string{weights, cfgPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOptionalModelUnavailable, err)
		}
	}

	net, err := open(weights, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOptionalModelUnavailable, err)
	}
	return net, nil
}
