package framing

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

const exifTimeLayout = "2006:01:02 15:04:05"

// TakenAtLayout is how the shot time is printed in the border
const TakenAtLayout = "2006-01-02 15:04:05"

// Metadata is the subset of EXIF printed in the border, already formatted
type Metadata struct {
	FocalLength  string // whole millimetres
	FNumber      string
	ExposureTime string // as a fraction, e.g. 1/250
	ISO          string
	TakenAt      string
	Make         string
	Model        string
	LensModel    string
}

// ReadMetadata decodes the EXIF block of the photo at path
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("no readable EXIF in %s: %w", path, err)
	}

	meta := &Metadata{}

	if tag, err := x.Get(exif.FocalLength); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.FocalLength = strconv.FormatInt(num/den, 10)
		}
	}
	if tag, err := x.Get(exif.FNumber); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.FNumber = strconv.FormatFloat(float64(num)/float64(den), 'g', -1, 64)
		}
	}
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			meta.ExposureTime = strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
		}
	}
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			meta.ISO = strconv.Itoa(iso)
		}
	}
	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if raw, err := tag.StringVal(); err == nil {
			if t, err := time.Parse(exifTimeLayout, cleanString(raw)); err == nil {
				meta.TakenAt = t.Format(TakenAtLayout)
			}
		}
	}

	meta.Make = stringTag(x, exif.Make)
	meta.Model = stringTag(x, exif.Model)
	meta.LensModel = stringTag(x, exif.LensModel)

	return meta, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return cleanString(s)
}

// cleanString drops the NUL padding some cameras leave in ASCII tags
func cleanString(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

// Exposure is the focal length, aperture, shutter and ISO line
func (m *Metadata) Exposure() string {
	if m.FocalLength == "" && m.FNumber == "" && m.ExposureTime == "" && m.ISO == "" {
		return ""
	}
	return fmt.Sprintf("%s mm   f %s   %s s   ISO %s", m.FocalLength, m.FNumber, m.ExposureTime, m.ISO)
}

// Device is the camera make and model
func (m *Metadata) Device() string {
	if m.Make == "" && m.Model == "" {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%s    %s", m.Make, m.Model))
}

// Field returns the formatted value for a caption key
func (m *Metadata) Field(key string) (string, bool) {
	switch key {
	case "expose":
		return m.Exposure(), true
	case "device":
		return m.Device(), true
	case "lens":
		return m.LensModel, true
	case "time":
		return m.TakenAt, true
	default:
		return "", false
	}
}
