package main

import (
	"embed"
	"log"
	"os"

	"framekit/internal/app"
	"framekit/internal/config"
	"framekit/internal/infrastructure/logging"
	"framekit/internal/window"

	"github.com/wailsapp/wails/v2"
)

//go:embed all:frontend/dist build/appicon.png
var assets embed.FS

func main() {
	// The environment is read here once and passed down as a value
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(logging.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
	})

	application := app.NewApp(cfg, logger)

	source := window.ContentSourceFor(cfg.Mode, cfg)
	opts, err := window.NewOptions(cfg, source, assets, application, application.API(), application.Convention(), logger)
	if err != nil {
		log.Fatal(err)
	}

	if err := wails.Run(opts); err != nil {
		log.Fatal(err)
	}
}
