// Package log builds the process logger.
//
// Stdout carries the MCP protocol, so log output goes to stderr and,
// optionally, to a size-rotated file.
package log

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields is an alias for logrus fields.
type Fields = logrus.Fields

// Rotation limits for the log file.
const (
	MaxSizeMB  = 50
	MaxAgeDays = 7
	MaxBackups = 3
)

// Options configures New.
type Options struct {
	// Level is a logrus level name such as "debug" or "info".
	Level string

	// File enables a rotating log file in addition to Output.
	File string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a logger writing nested-format lines with caller information.
func New(opts Options) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	writers := []io.Writer{out}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    MaxSizeMB,
			MaxAge:     MaxAgeDays,
			MaxBackups: MaxBackups,
		})
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&formatter.Formatter{
		NoColors:              true,
		TimestampFormat:       "2006-01-02 15:04:05",
		CallerFirst:           true,
		CustomCallerFormatter: CallerFormatter,
	})
	logger.SetOutput(io.MultiWriter(writers...))
	logger.SetReportCaller(true)
	return logger, nil
}

// CallerFormatter renders a caller as " [file.go:line][func()]".
func CallerFormatter(f *runtime.Frame) string {
	s := strings.Split(f.Function, ".")
	funcName := s[len(s)-1]
	return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, funcName)
}
