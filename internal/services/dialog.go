package services

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Dialog presents native file dialogs
type Dialog interface {
	OpenFile(ctx context.Context, options runtime.OpenDialogOptions) (string, error)
}

// WailsDialog opens dialogs through the Wails runtime. The ctx must be the one
// handed to OnStartup; any other context makes the runtime call fail.
type WailsDialog struct{}

// NewWailsDialog creates the production dialog adapter
func NewWailsDialog() *WailsDialog {
	return &WailsDialog{}
}

func (d *WailsDialog) OpenFile(ctx context.Context, options runtime.OpenDialogOptions) (string, error) {
	return runtime.OpenFileDialog(ctx, options)
}
