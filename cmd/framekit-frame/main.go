// Command framekit-frame adds an EXIF caption border to a photo or a directory of photos.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"framekit/internal/config"
	"framekit/internal/framing"
	"framekit/internal/infrastructure/logging"
)

func main() {
	var settingsPath string
	var input, output string
	flag.StringVar(&settingsPath, "config", "config.json", "Path to the framing settings (JSON or YAML)")
	flag.StringVar(&input, "in", "", "Photo or directory to frame, overrides imagePath")
	flag.StringVar(&output, "out", "", "Output directory, overrides outputPath")
	flag.Parse()

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.NewLogger(logging.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
	})

	settings, err := framing.LoadSettings(settingsPath)
	if err != nil {
		log.Fatalf("load settings: %v", err)
	}
	if input != "" {
		settings.ImagePath = input
	}
	if output != "" {
		settings.OutputPath = output
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := framing.NewFramer(settings, logger).Run(ctx)
	if err != nil {
		logger.Error("Framing stopped", "error", err)
		os.Exit(1)
	}
	if result.Failed > 0 {
		os.Exit(1)
	}
}
