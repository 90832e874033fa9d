package window

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httputil"
	"net/url"

	"framekit/internal/bridge"
	"framekit/internal/config"
	"framekit/internal/infrastructure/logging"
	"framekit/internal/platform"

	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

const (
	Width  = 800
	Height = 600

	distDir  = "frontend/dist"
	iconPath = "build/appicon.png"
)

// Hooks are the runtime callbacks the window reports its lifecycle to
type Hooks interface {
	Startup(ctx context.Context)
	DomReady(ctx context.Context)
	BeforeClose(ctx context.Context) bool
	Shutdown(ctx context.Context)
	SecondInstance(data options.SecondInstanceData)
}

// NewOptions builds the options for the application's only window.
// The bridge API is the sole bound value, so the UI can reach nothing else in the host.
// On keep-alive platforms the close button hides the window instead of quitting.
func NewOptions(cfg *config.Config, source ContentSource, assets fs.FS, hooks Hooks, api *bridge.API, conv platform.Convention, logger logging.Logger) (*options.App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("window options require a configuration")
	}
	if hooks == nil || api == nil {
		return nil, fmt.Errorf("window options require lifecycle hooks and a bridge API")
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	server, err := assetServer(source, assets, logger)
	if err != nil {
		return nil, err
	}

	app := &options.App{
		Title:                    cfg.Title,
		Width:                    Width,
		Height:                   Height,
		AssetServer:              server,
		Logger:                   logging.NewWailsLoggerAdapter(logger),
		LogLevel:                 logging.WailsLevel(cfg.LogLevel),
		OnStartup:                hooks.Startup,
		OnDomReady:               hooks.DomReady,
		OnBeforeClose:            hooks.BeforeClose,
		OnShutdown:               hooks.Shutdown,
		HideWindowOnClose:        HideOnClose(conv),
		EnableDefaultContextMenu: false,
		Bind: []interface{}{
			api,
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               cfg.SingleInstanceID,
			OnSecondInstanceLaunch: hooks.SecondInstance,
		},
		Debug: options.Debug{
			OpenInspectorOnStartup: false,
		},
		Windows: &windows.Options{
			ZoomFactor: 1.0,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title: cfg.Title,
				Icon:  readIcon(assets),
			},
		},
	}

	logger.Info("Window configured",
		"content", source.Kind.String(),
		"location", source.Location,
		"width", Width,
		"height", Height,
		"hide_on_close", HideOnClose(conv))

	return app, nil
}

func assetServer(source ContentSource, assets fs.FS, logger logging.Logger) (*assetserver.Options, error) {
	switch source.Kind {
	case ContentPackaged:
		if assets == nil {
			return nil, fmt.Errorf("packaged content requires embedded assets")
		}
		dist, err := fs.Sub(assets, distDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", distDir, err)
		}
		if _, err := fs.Stat(dist, "index.html"); err != nil {
			return nil, fmt.Errorf("packaged build is missing index.html: %w", err)
		}
		return &assetserver.Options{Assets: dist}, nil

	case ContentDevServer:
		proxy, err := NewDevServerProxy(source.Location, logger)
		if err != nil {
			return nil, err
		}
		return &assetserver.Options{Handler: proxy}, nil

	default:
		return nil, fmt.Errorf("unknown content source %s", source.Kind)
	}
}

// NewDevServerProxy forwards every asset request to the UI dev server
func NewDevServerProxy(rawURL string, logger logging.Logger) (http.Handler, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dev server URL %q: %w", rawURL, err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("dev server URL %q must be absolute", rawURL)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn("Dev server request failed",
				"path", r.URL.Path,
				"dev_server", target.String(),
				"error", err.Error())
			w.WriteHeader(http.StatusBadGateway)
		},
	}, nil
}

// readIcon returns the application icon when it is embedded alongside the build
func readIcon(assets fs.FS) []byte {
	if assets == nil {
		return nil
	}
	icon, err := fs.ReadFile(assets, iconPath)
	if err != nil {
		return nil
	}
	return icon
}
