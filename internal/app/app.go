package app

import (
	"context"
	"sync"
	"time"

	"framekit/internal/bridge"
	"framekit/internal/config"
	"framekit/internal/infrastructure/logging"
	"framekit/internal/platform"
	"framekit/internal/services"
	"framekit/internal/window"

	"github.com/wailsapp/wails/v2/pkg/options"
)

// backgroundStopWait bounds how long Shutdown waits for the dev server check
const backgroundStopWait = 2 * time.Second

var _ window.Hooks = (*App)(nil)

// App owns the window lifecycle and the bridge. It is never bound into the
// WebView itself; only the bridge API is.
type App struct {
	config    *config.Config
	logger    logging.Logger
	platform  platform.API
	window    WindowRuntime
	lifecycle *window.Lifecycle
	session   *bridge.Session
	api       *bridge.API
	probe     *services.DevServerProbe

	background     sync.WaitGroup
	stopBackground context.CancelFunc
}

// dependencies are the OS-facing collaborators, replaced in tests
type dependencies struct {
	platform platform.API
	window   WindowRuntime
	dialog   services.Dialog
}

// NewApp creates the application with the Wails runtime and the current platform
func NewApp(cfg *config.Config, logger logging.Logger) *App {
	return newApp(cfg, logger, dependencies{})
}

func newApp(cfg *config.Config, logger logging.Logger, deps dependencies) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if deps.platform == nil {
		deps.platform = platform.Current()
	}
	if deps.window == nil {
		deps.window = wailsWindow{}
	}
	if deps.dialog == nil {
		deps.dialog = services.NewWailsDialog()
	}

	session := bridge.NewSession()
	api := bridge.NewAPI(session,
		services.NewImageSelector(deps.dialog, logger),
		services.NewImageReader(logger),
		logger)

	return &App{
		config:         cfg,
		logger:         logger,
		platform:       deps.platform,
		window:         deps.window,
		lifecycle:      window.NewLifecycle(deps.platform.Convention()),
		session:        session,
		api:            api,
		probe:          services.NewDevServerProbe(cfg.ProbeTimeout, logger),
		stopBackground: func() {},
	}
}

// API returns the bridge value to bind into the window
func (a *App) API() *bridge.API {
	return a.api
}

// Convention returns the close behaviour of the platform the app runs on
func (a *App) Convention() platform.Convention {
	return a.platform.Convention()
}

// Startup is called once the Wails runtime has created the window
func (a *App) Startup(ctx context.Context) {
	if err := a.lifecycle.Ready(); err != nil {
		a.logger.Error("Unexpected startup", "error", err.Error())
		return
	}
	a.session.Attach(ctx)

	if a.config.IsDevelopment() && a.config.ProbeDevServer {
		probeCtx, cancel := context.WithCancel(ctx)
		a.stopBackground = cancel

		a.background.Add(1)
		go func() {
			defer a.background.Done()
			a.probe.Report(probeCtx, a.config.DevServerURL)
		}()
	}

	a.logger.Info("Application started",
		"mode", string(a.config.Mode),
		"convention", a.Convention().String())
}

// DomReady is called after front-end resources have been loaded
func (a *App) DomReady(ctx context.Context) {
	a.logger.Debug("UI loaded", "state", a.lifecycle.State().String())
}

// BeforeClose is called when the window closes or the user quits. It never
// prevents the close; hiding on keep-alive platforms happens in the runtime.
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	prevent = a.lifecycle.CloseAll()
	a.logger.Info("Close requested, quitting", "convention", a.Convention().String())
	return prevent
}

// SecondInstance is called when the app is launched again while running
func (a *App) SecondInstance(data options.SecondInstanceData) {
	ctx, ok := a.session.Context()
	if !ok {
		a.logger.Warn("Activation before startup ignored")
		return
	}

	switch a.lifecycle.State() {
	case window.StateClosed, window.StateTerminated:
		return
	}

	a.logger.Debug("Second instance launched",
		"args", data.Args,
		"working_directory", data.WorkingDirectory)

	if a.lifecycle.Activate() {
		if err := a.platform.PrepareActivation(); err != nil {
			a.logger.Warn("Failed to prepare activation", "error", err.Error())
		}
		a.window.Show(ctx)
		a.logger.Info("Window shown on activation")
		return
	}

	// A window is still visible, just bring it forward
	a.window.Unminimise(ctx)
	a.window.Show(ctx)
}

// Shutdown is called at application termination. In-flight bridge calls are
// not cancelled; the dev server check is, and is waited for briefly.
func (a *App) Shutdown(ctx context.Context) {
	a.lifecycle.Terminate()
	a.session.Detach()

	a.stopBackground()
	if !waitTimeout(&a.background, backgroundStopWait) {
		a.logger.Warn("Background work still running at shutdown")
	}

	a.logger.Info("Application shutdown completed")
}

// waitTimeout waits for wg and reports whether it finished within d
func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
