package framing

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"framekit/internal/infrastructure/errors"
	"framekit/internal/infrastructure/logging"
	"framekit/internal/services"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	textMargin      = 50
	autoFontShare   = 0.25
	autoLogoShare   = 0.8
	captionFontFile = "SFCompactItalic.ttf"
	timeFontFile    = "SFCamera.ttf"
)

// corner places one caption in the border
type corner struct {
	name       string
	caption    Caption
	defaultKey string
	fontFile   string
	bundled    []byte
	right      bool
	upper      bool
}

// Result summarises a Run
type Result struct {
	Processed int
	Failed    int
	Outputs   []string
}

// Framer renders bordered photos from Settings
type Framer struct {
	settings *Settings
	logger   logging.Logger
}

// NewFramer creates a framer; settings are expected to be validated
func NewFramer(settings *Settings, logger logging.Logger) *Framer {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Framer{settings: settings, logger: logger}
}

func (f *Framer) corners() []corner {
	s := f.settings
	return []corner{
		{name: "upper_left", caption: s.UpperLeft, defaultKey: "device", fontFile: captionFontFile, bundled: gomediumitalic.TTF, upper: true},
		{name: "lower_left", caption: s.LowerLeft, defaultKey: "lens", fontFile: captionFontFile, bundled: gomediumitalic.TTF},
		{name: "upper_right", caption: s.UpperRight, defaultKey: "expose", fontFile: captionFontFile, bundled: gomediumitalic.TTF, right: true, upper: true},
		{name: "lower_right", caption: s.LowerRight, defaultKey: "time", fontFile: timeFontFile, bundled: gomono.TTF, right: true},
	}
}

// Run frames ImagePath into OutputPath. A directory is walked and its layout
// mirrored; a single photo is written directly under OutputPath. Photos that
// fail are logged and counted, and do not stop the run.
func (f *Framer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	s := f.settings

	info, err := os.Stat(s.ImagePath)
	if err != nil {
		return nil, errors.NewOperationError("frame_photos", err, errors.ClassifyError(err))
	}
	if err := os.MkdirAll(s.OutputPath, 0o755); err != nil {
		return nil, errors.NewOperationError("frame_photos", err, errors.ClassifyError(err))
	}

	result := &Result{}

	if !info.IsDir() {
		f.frameOne(s.ImagePath, filepath.Join(s.OutputPath, outputName(filepath.Base(s.ImagePath))), result)
		f.logRun(result, start)
		return result, nil
	}

	outputAbs, _ := filepath.Abs(s.OutputPath)
	err = filepath.WalkDir(s.ImagePath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// Output nested in the input tree is not reprocessed
			if abs, _ := filepath.Abs(path); abs == outputAbs && path != s.ImagePath {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPhoto(path) {
			return nil
		}

		rel, err := filepath.Rel(s.ImagePath, path)
		if err != nil {
			return err
		}
		out := filepath.Join(s.OutputPath, filepath.Dir(rel), outputName(d.Name()))
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}
		f.frameOne(path, out, result)
		return nil
	})
	f.logRun(result, start)
	if err != nil {
		return result, errors.NewOperationError("frame_photos", err, errors.ClassifyError(err))
	}
	return result, nil
}

func (f *Framer) logRun(result *Result, start time.Time) {
	logging.LogOperation(f.logger, "frame_photos", time.Since(start), map[string]interface{}{
		"processed": result.Processed,
		"failed":    result.Failed,
	})
}

func (f *Framer) frameOne(in, out string, result *Result) {
	if err := f.FrameFile(in, out); err != nil {
		result.Failed++
		logging.LogOperationError(f.logger, err, "frame_photo", errors.ClassifyError(err).String(),
			map[string]interface{}{"path": in})
		return
	}
	result.Processed++
	result.Outputs = append(result.Outputs, out)
}

// FrameFile frames one photo and writes it as JPEG to out
func (f *Framer) FrameFile(in, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(src)
	src.Close()
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", in, err)
	}

	meta, err := ReadMetadata(in)
	if err != nil {
		f.logger.Warn("Photo has no EXIF, captions derived from it stay empty", "path", in, "error", err)
		meta = &Metadata{}
	}

	framed, err := f.Frame(img, meta)
	if err != nil {
		return err
	}

	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(dst, framed, &jpeg.Options{Quality: f.settings.Quality}); err != nil {
		dst.Close()
		return fmt.Errorf("failed to encode %s: %w", out, err)
	}
	return dst.Close()
}

// Frame returns img with the captioned border added below it
func (f *Framer) Frame(img image.Image, meta *Metadata) (image.Image, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	border := int(float64(height) * f.settings.BorderWidth)
	if border < 1 {
		return nil, errors.NewOperationErrorWithContext("frame_photo",
			fmt.Errorf("border of %v on a %dpx high photo is empty", f.settings.BorderWidth, height),
			errors.ErrCodeValidation,
			map[string]string{"field": "borderWidth"})
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height+border))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, width, height), img, bounds.Min, draw.Src)

	dc := gg.NewContextForImage(canvas)
	newHeight := float64(height + border)

	logoWidth := 0
	if f.settings.Logo.On {
		w, err := f.drawLogo(dc, meta, float64(border), newHeight)
		if err != nil {
			return nil, err
		}
		logoWidth = w
	}

	dc.SetRGB(0, 0, 0)
	for _, c := range f.corners() {
		if !c.caption.On {
			continue
		}
		text := captionText(c, meta)
		if text == "" {
			continue
		}

		size, _ := fontSize(c.caption.FontSize, float64(border)*autoFontShare)
		face, err := f.fontFace(c, size)
		if err != nil {
			f.logger.Warn("Caption font could not be loaded, corner skipped", "corner", c.name, "font", c.caption.FontPath, "error", err)
			continue
		}
		dc.SetFontFace(face)

		textWidth, _ := dc.MeasureString(text)
		x := float64(logoWidth + textMargin)
		if c.right {
			x = float64(width) - textWidth - textMargin
		}
		y := newHeight - float64(border)/5
		if c.upper {
			y = newHeight - float64(border)*3/5
		}
		drawBold(dc, text, x, y, c.caption.Bold)
	}

	return dc.Image(), nil
}

// drawBold stamps text at (x, y) and, for bold > 0, at every offset within
// bold pixels of it
func drawBold(dc *gg.Context, text string, x, y float64, bold int) {
	dc.DrawString(text, x, y)
	for dx := -bold; dx <= bold; dx++ {
		for dy := -bold; dy <= bold; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawString(text, x+float64(dx), y+float64(dy))
		}
	}
}

func captionText(c corner, meta *Metadata) string {
	key := c.caption.Text
	if key == "" || key == DefaultValue {
		key = c.defaultKey
	}
	if value, ok := meta.Field(key); ok {
		return value
	}
	return c.caption.Text
}

// fontFace resolves the caption font: "default" uses the font shipped under
// AssetDir/font or the bundled Go font, a bare name is looked up under
// AssetDir/font, anything else is a file path
func (f *Framer) fontFace(c corner, size float64) (font.Face, error) {
	name := c.caption.FontPath
	if name == "" || name == DefaultValue {
		path := filepath.Join(f.settings.AssetDir, "font", c.fontFile)
		if _, err := os.Stat(path); err == nil {
			return gg.LoadFontFace(path, size)
		}
		parsed, err := truetype.Parse(c.bundled)
		if err != nil {
			return nil, err
		}
		return truetype.NewFace(parsed, &truetype.Options{Size: size}), nil
	}

	if !strings.ContainsRune(name, os.PathSeparator) && !strings.Contains(name, "/") {
		path := filepath.Join(f.settings.AssetDir, "font", name)
		if _, err := os.Stat(path); err == nil {
			return gg.LoadFontFace(path, size)
		}
	}
	return gg.LoadFontFace(name, size)
}

// drawLogo scales the logo to a share of the border height, centres it
// vertically in the border at the left edge and returns its width
func (f *Framer) drawLogo(dc *gg.Context, meta *Metadata, border, newHeight float64) (int, error) {
	logo := f.settings.Logo
	path := logo.FilePath
	if path == "" || path == DefaultValue {
		if meta.Make == "" {
			return 0, errors.NewOperationErrorWithContext("frame_photo",
				fmt.Errorf("default logo needs the camera make from EXIF"),
				errors.ErrCodeValidation,
				map[string]string{"field": "logo.filePath"})
		}
		path = filepath.Join(f.settings.AssetDir, "logo", meta.Make+".png")
	}

	src, err := gg.LoadImage(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load logo %s: %w", path, err)
	}

	share, _ := ratio(logo.Resize, autoLogoShare)
	logoHeight := int(border * share)
	sb := src.Bounds()
	if logoHeight < 1 || sb.Dy() == 0 {
		return 0, nil
	}
	logoWidth := sb.Dx() * logoHeight / sb.Dy()

	scaled := image.NewRGBA(image.Rect(0, 0, logoWidth, logoHeight))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, draw.Over, nil)

	top := newHeight - border*(1-(1-share)/2)
	dc.DrawImage(scaled, 0, int(top))
	return logoWidth, nil
}

func isPhoto(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, allowed := range services.ImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// outputName keeps the photo name; output is always JPEG, so other
// extensions become .jpg
func outputName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".jpg" || ext == ".jpeg" {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}
