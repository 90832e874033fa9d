package window

import (
	"fmt"

	"framekit/internal/config"
)

// ContentKind says where the window's UI is loaded from
type ContentKind int

const (
	ContentPackaged ContentKind = iota
	ContentDevServer
)

func (k ContentKind) String() string {
	switch k {
	case ContentPackaged:
		return "packaged"
	case ContentDevServer:
		return "dev_server"
	default:
		return fmt.Sprintf("ContentKind(%d)", int(k))
	}
}

// PackagedEntry is the built UI entry point inside the embedded assets
const PackagedEntry = "frontend/dist/index.html"

// ContentSource is the resolved location of the window content
type ContentSource struct {
	Kind     ContentKind
	Location string // embedded file path or dev server URL
}

// ContentSourceFor picks the packaged build in production and the dev server otherwise
func ContentSourceFor(mode config.Mode, cfg *config.Config) ContentSource {
	if mode == config.ModeProduction {
		return ContentSource{Kind: ContentPackaged, Location: PackagedEntry}
	}

	devURL := config.DefaultDevServerURL
	if cfg != nil && cfg.DevServerURL != "" {
		devURL = cfg.DevServerURL
	}
	return ContentSource{Kind: ContentDevServer, Location: devURL}
}
