package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/vision-mcp/internal/config"
	"github.com/ironsheep/vision-mcp/internal/log"
	"github.com/ironsheep/vision-mcp/internal/opencv"
	"github.com/ironsheep/vision-mcp/internal/server"
	"github.com/ironsheep/vision-mcp/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("vision-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(os.Getenv("VISION_ENV_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vision-mcp: %v\n", err)
		os.Exit(1)
	}

	// Log to stderr (stdout is for MCP protocol)
	logger, err := log.New(log.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "vision-mcp: %v\n", err)
		os.Exit(1)
	}
	logger.WithFields(log.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("Vision MCP Server starting")

	backend := vision.Backend{Cascade: opencv.OpenCascade, Network: opencv.OpenDarknet}
	engine, err := vision.Open(cfg, backend, logger)
	if err != nil {
		if errors.Is(err, vision.ErrModelLoad) {
			logger.Errorf("Cascade files are read from %q; run scripts/fetch-models.sh to download them", cfg.Cascades.Dir)
		}
		logger.WithError(err).Fatal("Failed to initialize vision engine")
	}
	defer engine.Close()

	server.Version = Version
	srv := server.New(engine, logger, cfg.Server.FrameCache)
	if err := srv.Run(); err != nil {
		logger.WithError(err).Error("Server error")
		engine.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("vision-mcp - MCP server for grounded camera frame analysis")
	fmt.Println()
	fmt.Println("Usage: vision-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env or $VISION_ENV_FILE):")
	fmt.Println("  VISION_CASCADE_DIR     Directory holding the cascade XML files (default cascades)")
	fmt.Println("  VISION_FACE_CASCADE    Face cascade file")
	fmt.Println("  VISION_EYE_CASCADE     Eye cascade file")
	fmt.Println("  VISION_BODY_CASCADE    Full-body cascade file")
	fmt.Println("  VISION_MODEL_DIR       Directory holding the darknet model (default models)")
	fmt.Println("  VISION_DEEP_WEIGHTS    Darknet weights file (default yolov3-tiny.weights)")
	fmt.Println("  VISION_DEEP_CONFIG     Darknet cfg file (default yolov3-tiny.cfg)")
	fmt.Println("  VISION_LOG_LEVEL       trace, debug, info, warn or error (default info)")
	fmt.Println("  VISION_LOG_FILE        Also write logs to this rotated file")
	fmt.Println("  VISION_FRAME_CACHE     Decoded frames kept in memory (default 16)")
	fmt.Println()
	fmt.Println("Builds with -tags gocv run the cascades and the object detector on OpenCV;")
	fmt.Println("other builds use the built-in cascade evaluator and skip object detection.")
	fmt.Println("Run scripts/fetch-models.sh to download the cascade and model files.")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
