package app

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// WindowRuntime is the subset of the Wails window runtime the app drives
type WindowRuntime interface {
	Show(ctx context.Context)
	Unminimise(ctx context.Context)
}

type wailsWindow struct{}

func (wailsWindow) Show(ctx context.Context)       { runtime.WindowShow(ctx) }
func (wailsWindow) Unminimise(ctx context.Context) { runtime.WindowUnminimise(ctx) }
