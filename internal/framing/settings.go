// Package framing adds a white caption border to photos, filled from their EXIF data.
package framing

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"framekit/internal/infrastructure/errors"

	"gopkg.in/yaml.v3"
)

// Setting values with a special meaning
const (
	DefaultValue = "default" // text, font or logo derived from the photo
	AutoValue    = "auto"    // size derived from the border height
)

// Logo placed at the left of the border
type Logo struct {
	On       bool   `yaml:"on"`
	FilePath string `yaml:"filePath"` // "default" looks up logo/<camera make>.png under AssetDir
	Resize   string `yaml:"resize"`   // share of the border height, or "auto"
}

// Caption is the text for one corner of the border
type Caption struct {
	On       bool   `yaml:"on"`
	Text     string `yaml:"text"`     // literal, "default", or one of expose/device/lens/time
	FontPath string `yaml:"fontPath"` // font file, a name under AssetDir/font, or "default"
	FontSize string `yaml:"fontSize"` // points, or "auto"
	Bold     int    `yaml:"bold"`
}

// Settings describe one framing run. The file format is the YAML or JSON
// config.json of the photo framing tool.
type Settings struct {
	ImagePath   string  `yaml:"imagePath"`  // a photo or a directory of photos
	OutputPath  string  `yaml:"outputPath"` // directory the framed photos are written to
	Quality     int     `yaml:"quality"`    // JPEG quality 1-100
	BorderWidth float64 `yaml:"borderWidth"`
	AssetDir    string  `yaml:"assetDir"` // holds font/ and logo/

	Logo       Logo    `yaml:"logo"`
	UpperLeft  Caption `yaml:"upperLeft"`
	LowerLeft  Caption `yaml:"lowerLeft"`
	UpperRight Caption `yaml:"upperRight"`
	LowerRight Caption `yaml:"lowerRight"`
}

func defaultCaption() Caption {
	return Caption{On: true, Text: DefaultValue, FontPath: DefaultValue, FontSize: AutoValue}
}

// DefaultSettings returns a bottom border of a tenth of the photo height with
// all four corners captioned from EXIF and no logo
func DefaultSettings() *Settings {
	return &Settings{
		Quality:     95,
		BorderWidth: 0.1,
		AssetDir:    ".",
		Logo:        Logo{On: false, FilePath: DefaultValue, Resize: AutoValue},
		UpperLeft:   defaultCaption(),
		LowerLeft:   defaultCaption(),
		UpperRight:  defaultCaption(),
		LowerRight:  defaultCaption(),
	}
}

// LoadSettings overlays the file at path onto DefaultSettings and validates the result
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read framing settings %s: %w", path, err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse framing settings %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate checks the settings before any photo is touched
func (s *Settings) Validate() error {
	invalid := func(field, format string, args ...interface{}) error {
		return errors.NewOperationErrorWithContext("validate_framing_settings",
			fmt.Errorf(format, args...),
			errors.ErrCodeValidation,
			map[string]string{"field": field})
	}

	if strings.TrimSpace(s.ImagePath) == "" {
		return invalid("imagePath", "imagePath cannot be empty")
	}
	if strings.TrimSpace(s.OutputPath) == "" {
		return invalid("outputPath", "outputPath cannot be empty")
	}
	if s.Quality < 1 || s.Quality > 100 {
		return invalid("quality", "quality must be between 1 and 100, got %d", s.Quality)
	}
	if s.BorderWidth <= 0 || s.BorderWidth > 1 {
		return invalid("borderWidth", "borderWidth must be in (0, 1], got %v", s.BorderWidth)
	}

	if s.Logo.On {
		if _, err := ratio(s.Logo.Resize, 0.8); err != nil {
			return invalid("logo.resize", "%v", err)
		}
	}

	captions := map[string]Caption{
		"upperLeft":  s.UpperLeft,
		"lowerLeft":  s.LowerLeft,
		"upperRight": s.UpperRight,
		"lowerRight": s.LowerRight,
	}
	for name, c := range captions {
		if !c.On {
			continue
		}
		if _, err := fontSize(c.FontSize, 1); err != nil {
			return invalid(name+".fontSize", "%v", err)
		}
		if c.Bold < 0 || c.Bold > 10 {
			return invalid(name+".bold", "bold must be between 0 and 10, got %d", c.Bold)
		}
	}
	return nil
}

// ratio parses a share in (0, 1]; "auto" or empty gives auto
func ratio(value string, auto float64) (float64, error) {
	if value == "" || value == AutoValue {
		return auto, nil
	}
	r, err := strconv.ParseFloat(value, 64)
	if err != nil || r <= 0 || r > 1 {
		return 0, fmt.Errorf("resize must be %q or a number in (0, 1], got %q", AutoValue, value)
	}
	return r, nil
}

// fontSize parses a point size; "auto" or empty gives auto
func fontSize(value string, auto float64) (float64, error) {
	if value == "" || value == AutoValue {
		return auto, nil
	}
	size, err := strconv.ParseFloat(value, 64)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("fontSize must be %q or a positive number, got %q", AutoValue, value)
	}
	return size, nil
}
