// Package config loads the vision server configuration from defaults, an
// optional .env file and VISION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a value cannot be parsed or fails
// validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment keys.
const (
	EnvCascadeDir  = "VISION_CASCADE_DIR"
	EnvFaceCascade = "VISION_FACE_CASCADE"
	EnvEyeCascade  = "VISION_EYE_CASCADE"
	EnvBodyCascade = "VISION_BODY_CASCADE"
	EnvModelDir    = "VISION_MODEL_DIR"
	EnvDeepWeights = "VISION_DEEP_WEIGHTS"
	EnvDeepConfig  = "VISION_DEEP_CONFIG"
	EnvLogLevel    = "VISION_LOG_LEVEL"
	EnvLogFile     = "VISION_LOG_FILE"
	EnvFrameCache  = "VISION_FRAME_CACHE"
)

// Config holds the server configuration.
type Config struct {
	Cascades CascadeConfig
	Deep     DeepConfig
	Log      LogConfig
	Server   ServerConfig
}

// CascadeConfig locates the face, eye and body cascade XML files. Relative
// file names are resolved against Dir.
//
// The defaults are the stock cascades from OpenCV's data/haarcascades;
// scripts/fetch-models.sh downloads them together with the darknet model.
type CascadeConfig struct {
	Dir  string
	Face string `validate:"required"`
	Eye  string `validate:"required"`
	Body string `validate:"required"`
}

// DeepConfig locates the optional darknet detector.
type DeepConfig struct {
	Dir     string
	Weights string `validate:"required"`
	Config  string `validate:"required"`
}

// LogConfig controls logger construction. An empty File logs to stderr only.
type LogConfig struct {
	Level string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	File  string
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	FrameCache int `validate:"gte=1,lte=1024"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Cascades: CascadeConfig{
			Dir:  "cascades",
			Face: "haarcascade_frontalface_default.xml",
			Eye:  "haarcascade_eye.xml",
			Body: "haarcascade_fullbody.xml",
		},
		Deep: DeepConfig{
			Dir:     "models",
			Weights: "yolov3-tiny.weights",
			Config:  "yolov3-tiny.cfg",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			FrameCache: 16,
		},
	}
}

// Load builds the configuration.
//
// Values are layered: defaults, then envFile (if empty, ./.env when it
// exists), then the process environment. Variables already set in the
// environment take precedence over the file. The result is validated.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	setString(EnvCascadeDir, &c.Cascades.Dir)
	setString(EnvFaceCascade, &c.Cascades.Face)
	setString(EnvEyeCascade, &c.Cascades.Eye)
	setString(EnvBodyCascade, &c.Cascades.Body)
	setString(EnvModelDir, &c.Deep.Dir)
	setString(EnvDeepWeights, &c.Deep.Weights)
	setString(EnvDeepConfig, &c.Deep.Config)
	setString(EnvLogLevel, &c.Log.Level)
	setString(EnvLogFile, &c.Log.File)
	c.Log.Level = strings.ToLower(c.Log.Level)

	if v, ok := os.LookupEnv(EnvFrameCache); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvFrameCache, v)
		}
		c.Server.FrameCache = n
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// resolve joins name onto dir unless name is already absolute.
func resolve(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// FacePath returns the resolved face cascade path.
func (c CascadeConfig) FacePath() string { return resolve(c.Dir, c.Face) }

// EyePath returns the resolved eye cascade path.
func (c CascadeConfig) EyePath() string { return resolve(c.Dir, c.Eye) }

// BodyPath returns the resolved body cascade path.
func (c CascadeConfig) BodyPath() string { return resolve(c.Dir, c.Body) }

// WeightsPath returns the resolved darknet weights path.
func (c DeepConfig) WeightsPath() string { return resolve(c.Dir, c.Weights) }

// ConfigPath returns the resolved darknet cfg path.
func (c DeepConfig) ConfigPath() string { return resolve(c.Dir, c.Config) }
