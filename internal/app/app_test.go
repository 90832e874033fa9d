package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"framekit/internal/config"
	"framekit/internal/platform"
	"framekit/internal/testutils"
	"framekit/internal/window"

	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

type fakePlatform struct {
	convention platform.Convention
	prepareErr error
	prepared   int
}

func (f *fakePlatform) Convention() platform.Convention { return f.convention }

func (f *fakePlatform) PrepareActivation() error {
	f.prepared++
	return f.prepareErr
}

// fakeWindow records the window runtime calls in order
type fakeWindow struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeWindow) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeWindow) Show(ctx context.Context)       { f.record("show") }
func (f *fakeWindow) Unminimise(ctx context.Context) { f.record("unminimise") }

func (f *fakeWindow) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeDialog struct {
	path string
}

func (f *fakeDialog) OpenFile(ctx context.Context, opts runtime.OpenDialogOptions) (string, error) {
	return f.path, nil
}

func newTestApp(t *testing.T, cfg *config.Config, conv platform.Convention) (*App, *fakePlatform, *fakeWindow, *testutils.RecordingLogger) {
	t.Helper()
	plat := &fakePlatform{convention: conv}
	win := &fakeWindow{}
	logger := &testutils.RecordingLogger{}
	if cfg == nil {
		cfg = config.ProductionConfig()
	}
	a := newApp(cfg, logger, dependencies{platform: plat, window: win, dialog: &fakeDialog{}})
	return a, plat, win, logger
}

func TestApp_StartupAttachesBridge(t *testing.T) {
	a, _, _, _ := newTestApp(t, nil, platform.ConventionSingleWindowExit)

	if _, err := a.API().SelectImageFile(); err == nil {
		t.Error("bridge should refuse calls before startup")
	}

	a.Startup(context.Background())
	if a.lifecycle.State() != window.StateCreated {
		t.Errorf("state = %s, want created", a.lifecycle.State())
	}

	path, err := a.API().SelectImageFile()
	if err != nil {
		t.Fatalf("SelectImageFile() after startup returned error: %v", err)
	}
	if path != nil {
		t.Errorf("empty dialog result should map to nil, got %q", *path)
	}
}

func TestApp_StartupTwice(t *testing.T) {
	a, _, _, logger := newTestApp(t, nil, platform.ConventionSingleWindowExit)
	a.Startup(context.Background())
	a.Startup(context.Background())

	if _, ok := logger.Find("error", "Unexpected startup"); !ok {
		t.Error("second startup should be logged as an error")
	}
}

func TestApp_CloseSingleWindowExits(t *testing.T) {
	a, plat, win, _ := newTestApp(t, nil, platform.ConventionSingleWindowExit)
	ctx := context.Background()
	a.Startup(ctx)

	if a.BeforeClose(ctx) {
		t.Error("close must not be prevented on single-window platforms")
	}
	if a.lifecycle.State() != window.StateClosed {
		t.Errorf("state = %s, want closed", a.lifecycle.State())
	}

	a.SecondInstance(options.SecondInstanceData{})
	if len(win.Calls()) != 0 || plat.prepared != 0 {
		t.Error("activation while closing should do nothing")
	}

	a.Shutdown(ctx)
	if a.lifecycle.State() != window.StateTerminated {
		t.Errorf("state = %s, want terminated", a.lifecycle.State())
	}
}

func TestApp_KeepAliveReshowsThenQuits(t *testing.T) {
	a, plat, win, logger := newTestApp(t, nil, platform.ConventionKeepAlive)
	ctx := context.Background()
	a.Startup(ctx)

	// the close button hid the window in the runtime; a relaunch brings it back
	a.SecondInstance(options.SecondInstanceData{Args: []string{"--again"}})
	if a.lifecycle.State() != window.StateRecreated {
		t.Errorf("state = %s, want recreated", a.lifecycle.State())
	}
	if plat.prepared != 1 {
		t.Errorf("PrepareActivation called %d times, want 1", plat.prepared)
	}
	if got := win.Calls(); len(got) != 1 || got[0] != "show" {
		t.Errorf("window calls = %v, want [show]", got)
	}
	if _, ok := logger.Find("info", "Window shown on activation"); !ok {
		t.Error("expected the reshow to be logged")
	}

	// Cmd+Q, Dock quit and menu quit all arrive as close requests
	for i := 0; i < 3; i++ {
		if a.BeforeClose(ctx) {
			t.Fatalf("quit %d was prevented", i)
		}
	}
	if a.lifecycle.State() != window.StateClosed {
		t.Errorf("state = %s, want closed", a.lifecycle.State())
	}
	if got := win.Calls(); len(got) != 1 {
		t.Errorf("quit should not touch the window, calls %v", got)
	}
}

func TestApp_ActivateWithVisibleWindowFocuses(t *testing.T) {
	a, plat, win, _ := newTestApp(t, nil, platform.ConventionSingleWindowExit)
	a.Startup(context.Background())

	a.SecondInstance(options.SecondInstanceData{})

	if plat.prepared != 0 {
		t.Error("PrepareActivation should only run when recreating")
	}
	got := win.Calls()
	if len(got) != 2 || got[0] != "unminimise" || got[1] != "show" {
		t.Errorf("window calls = %v, want [unminimise show]", got)
	}
	if a.lifecycle.State() != window.StateCreated {
		t.Errorf("state = %s, want created", a.lifecycle.State())
	}
}

func TestApp_PrepareActivationFailureStillShows(t *testing.T) {
	a, plat, win, logger := newTestApp(t, nil, platform.ConventionKeepAlive)
	plat.prepareErr = errors.New("access denied")
	a.Startup(context.Background())

	a.SecondInstance(options.SecondInstanceData{})

	if _, ok := logger.Find("warn", "Failed to prepare activation"); !ok {
		t.Error("expected a warning for the activation failure")
	}
	if got := win.Calls(); got[len(got)-1] != "show" {
		t.Errorf("window should still be shown, calls %v", got)
	}
}

func TestApp_ActivationBeforeStartup(t *testing.T) {
	a, _, win, logger := newTestApp(t, nil, platform.ConventionKeepAlive)
	a.SecondInstance(options.SecondInstanceData{})

	if len(win.Calls()) != 0 {
		t.Errorf("window runtime should not be touched, got %v", win.Calls())
	}
	if _, ok := logger.Find("warn", "Activation before startup ignored"); !ok {
		t.Error("expected a warning")
	}
}

func TestApp_ShutdownDetachesBridge(t *testing.T) {
	a, _, _, _ := newTestApp(t, nil, platform.ConventionSingleWindowExit)
	ctx := context.Background()
	a.Startup(ctx)
	a.Shutdown(ctx)

	if a.lifecycle.State() != window.StateTerminated {
		t.Errorf("state = %s, want terminated", a.lifecycle.State())
	}
	if _, err := a.API().ReadImageFile("/tmp/a.jpg"); err == nil {
		t.Error("bridge should refuse calls after shutdown")
	}
}

func TestApp_DevelopmentProbesDevServer(t *testing.T) {
	var hits int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>dev</title></head><body><div id="app"></div></body></html>`))
	}))
	defer server.Close()

	cfg := config.DevelopmentConfig()
	cfg.DevServerURL = server.URL

	a, _, _, logger := newTestApp(t, cfg, platform.ConventionSingleWindowExit)
	a.Startup(context.Background())
	a.background.Wait()

	mu.Lock()
	defer mu.Unlock()
	if hits != 1 {
		t.Errorf("dev server hit %d times, want 1", hits)
	}
	if len(logger.Calls("warn")) != 0 {
		t.Errorf("unexpected warnings: %v", logger.Calls("warn"))
	}
}

func TestApp_ProductionSkipsProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("production must not contact the dev server")
	}))
	defer server.Close()

	cfg := config.ProductionConfig()
	cfg.DevServerURL = server.URL
	a, _, _, _ := newTestApp(t, cfg, platform.ConventionSingleWindowExit)
	a.Startup(context.Background())
	a.background.Wait()
}

func TestApp_ShutdownStopsDevServerCheck(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := config.DevelopmentConfig()
	cfg.DevServerURL = server.URL
	cfg.ProbeTimeout = time.Minute

	a, _, _, logger := newTestApp(t, cfg, platform.ConventionSingleWindowExit)
	ctx := context.Background()
	a.Startup(ctx)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("dev server check never started")
	}

	begin := time.Now()
	a.Shutdown(ctx)
	if elapsed := time.Since(begin); elapsed >= backgroundStopWait {
		t.Errorf("Shutdown took %v, want under %v", elapsed, backgroundStopWait)
	}
	if !waitTimeout(&a.background, 100*time.Millisecond) {
		t.Error("dev server check still running after shutdown")
	}
	if _, ok := logger.Find("warn", "Background work still running at shutdown"); ok {
		t.Error("shutdown should not have timed out")
	}
}

func TestWaitTimeout(t *testing.T) {
	var wg sync.WaitGroup
	if !waitTimeout(&wg, time.Second) {
		t.Error("idle group should finish immediately")
	}

	wg.Add(1)
	if waitTimeout(&wg, 10*time.Millisecond) {
		t.Error("busy group should time out")
	}
	wg.Done()
}
