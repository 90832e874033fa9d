package services

import (
	"context"
	"encoding/base64"
	"os"

	"framekit/internal/infrastructure/logging"

	"github.com/wailsapp/mimetype"
)

// DataURIMediaType is the media type written into every payload, whatever the file actually holds
const DataURIMediaType = "image/jpeg"

// DataURIPrefix precedes the base64 payload returned by ImageReader
const DataURIPrefix = "data:" + DataURIMediaType + ";base64,"

// ImageReader turns an image file into a data URI the UI can use as an <img> source
type ImageReader struct {
	logger logging.Logger
}

// NewImageReader creates a new reader
func NewImageReader(logger logging.Logger) *ImageReader {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &ImageReader{logger: logger}
}

// Read loads the whole file and encodes it as data:image/jpeg;base64,<bytes>.
// Read errors are returned exactly as the filesystem reported them.
func (r *ImageReader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	// The prefix stays image/jpeg for every file; a PNG is still labelled JPEG
	if detected := mimetype.Detect(data); !detected.Is(DataURIMediaType) {
		r.logger.Debug("media type mismatch",
			"path", path,
			"declared", DataURIMediaType,
			"detected", detected.String())
	}

	return EncodeDataURI(data), nil
}

// EncodeDataURI wraps raw bytes in the fixed image/jpeg data URI
func EncodeDataURI(data []byte) string {
	return DataURIPrefix + base64.StdEncoding.EncodeToString(data)
}
