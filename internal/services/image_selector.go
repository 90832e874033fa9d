package services

import (
	"context"
	"strings"

	"framekit/internal/infrastructure/logging"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ImageExtensions are the file types offered by the selection dialog
var ImageExtensions = []string{"jpg", "jpeg", "png"}

const selectDialogTitle = "Select Image"

// ImageSelector presents a single-file image picker
type ImageSelector struct {
	dialog Dialog
	logger logging.Logger
}

// NewImageSelector creates a selector over the given dialog
func NewImageSelector(dialog Dialog, logger logging.Logger) *ImageSelector {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &ImageSelector{
		dialog: dialog,
		logger: logger,
	}
}

// DialogOptions returns the dialog configuration: one "Images" filter, single selection
func DialogOptions() runtime.OpenDialogOptions {
	patterns := make([]string, 0, len(ImageExtensions))
	for _, ext := range ImageExtensions {
		patterns = append(patterns, "*."+ext)
	}

	return runtime.OpenDialogOptions{
		Title: selectDialogTitle,
		Filters: []runtime.FileFilter{
			{DisplayName: "Images", Pattern: strings.Join(patterns, ";")},
		},
	}
}

// Select shows the dialog and returns the chosen path, or nil when the user cancelled.
// Cancellation is not an error.
func (s *ImageSelector) Select(ctx context.Context) (*string, error) {
	path, err := s.dialog.OpenFile(ctx, DialogOptions())
	if err != nil {
		return nil, err
	}

	if path == "" {
		s.logger.Debug("Image selection cancelled")
		return nil, nil
	}

	s.logger.Debug("Image selected", "path", path)
	return &path, nil
}
