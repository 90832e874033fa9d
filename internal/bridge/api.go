package bridge

import (
	"context"
	"fmt"
	"time"

	"framekit/internal/infrastructure/errors"
	"framekit/internal/infrastructure/logging"

	"github.com/google/uuid"
)

// ImageAPI is the complete set of host capabilities available to the UI.
// The UI receives it as window.go.bridge.API; nothing else is bound.
type ImageAPI interface {
	// SelectImageFile resolves to an absolute path, or null when the dialog was cancelled
	SelectImageFile() (*string, error)
	// ReadImageFile resolves to data:image/jpeg;base64,<bytes> and rejects with the read error
	ReadImageFile(filePath string) (string, error)
}

// Selector picks an image file; nil means cancelled
type Selector interface {
	Select(ctx context.Context) (*string, error)
}

// Reader loads an image file as a data URI
type Reader interface {
	Read(ctx context.Context, path string) (string, error)
}

const (
	opSelectImageFile = "select_image_file"
	opReadImageFile   = "read_image_file"
)

var _ ImageAPI = (*API)(nil)

// API is bound into the WebView. Wails exposes every exported method of a bound
// struct, so this type must keep exactly the two ImageAPI methods.
type API struct {
	session  *Session
	selector Selector
	reader   Reader
	logger   logging.Logger
}

// NewAPI wires the bridge to its handlers
func NewAPI(session *Session, selector Selector, reader Reader, logger logging.Logger) *API {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &API{
		session:  session,
		selector: selector,
		reader:   reader,
		logger:   logger,
	}
}

func (a *API) SelectImageFile() (*string, error) {
	callID := uuid.NewString()
	ctx, err := a.context(opSelectImageFile, callID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	path, err := a.selector.Select(ctx)
	if err != nil {
		a.logFailure(err, opSelectImageFile, callID, "")
		return nil, err
	}

	logging.LogOperation(a.logger, opSelectImageFile, time.Since(start), map[string]interface{}{
		"call_id":   callID,
		"cancelled": path == nil,
	})
	return path, nil
}

func (a *API) ReadImageFile(filePath string) (string, error) {
	callID := uuid.NewString()
	ctx, err := a.context(opReadImageFile, callID)
	if err != nil {
		return "", err
	}

	start := time.Now()
	uri, err := a.reader.Read(ctx, filePath)
	if err != nil {
		// Returned unwrapped so the UI sees the filesystem's own message
		a.logFailure(err, opReadImageFile, callID, filePath)
		return "", err
	}

	logging.LogOperation(a.logger, opReadImageFile, time.Since(start), map[string]interface{}{
		"call_id": callID,
		"path":    filePath,
		"size":    len(uri),
	})
	return uri, nil
}

// context returns the attached runtime context or an internal error when the
// window has not started yet or has already shut down
func (a *API) context(op, callID string) (context.Context, error) {
	ctx, ok := a.session.Context()
	if ok {
		return ctx, nil
	}

	err := errors.NewOperationErrorWithContext(op,
		fmt.Errorf("bridge called without an active window"),
		errors.ErrCodeInternal,
		map[string]string{"call_id": callID})
	logging.LogOperationError(a.logger, err, op, err.GetCode(), nil)
	return nil, err
}

func (a *API) logFailure(err error, op, callID, path string) {
	fields := map[string]interface{}{"call_id": callID}
	if path != "" {
		fields["path"] = path
	}
	logging.LogOperationError(a.logger, err, op, errors.ClassifyError(err).String(), fields)
}
