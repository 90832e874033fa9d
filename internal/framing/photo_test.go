package framing

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TIFF field types used by the camera tags below
const (
	tiffASCII    = 2
	tiffShort    = 3
	tiffLong     = 4
	tiffRational = 5
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte
}

func asciiEntry(tag uint16, s string) ifdEntry {
	v := append([]byte(s), 0)
	return ifdEntry{tag: tag, typ: tiffASCII, count: uint32(len(v)), value: v}
}

func rationalEntry(tag uint16, num, den uint32) ifdEntry {
	v := make([]byte, 8)
	binary.LittleEndian.PutUint32(v, num)
	binary.LittleEndian.PutUint32(v[4:], den)
	return ifdEntry{tag: tag, typ: tiffRational, count: 1, value: v}
}

func shortEntry(tag, n uint16) ifdEntry {
	v := make([]byte, 2)
	binary.LittleEndian.PutUint16(v, n)
	return ifdEntry{tag: tag, typ: tiffShort, count: 1, value: v}
}

func longEntry(tag uint16, n uint32) ifdEntry {
	v := make([]byte, 4)
	binary.LittleEndian.PutUint32(v, n)
	return ifdEntry{tag: tag, typ: tiffLong, count: 1, value: v}
}

// encodeIFD lays out an IFD at offset base, values that do not fit inline follow it
func encodeIFD(base uint32, entries []ifdEntry) []byte {
	le := binary.LittleEndian
	dataStart := base + 2 + 12*uint32(len(entries)) + 4

	head := le.AppendUint16(nil, uint16(len(entries)))
	var data []byte
	for _, e := range entries {
		head = le.AppendUint16(head, e.tag)
		head = le.AppendUint16(head, e.typ)
		head = le.AppendUint32(head, e.count)
		if len(e.value) <= 4 {
			field := make([]byte, 4)
			copy(field, e.value)
			head = append(head, field...)
			continue
		}
		head = le.AppendUint32(head, dataStart+uint32(len(data)))
		data = append(data, e.value...)
		if len(data)%2 == 1 {
			data = append(data, 0)
		}
	}
	head = le.AppendUint32(head, 0)
	return append(head, data...)
}

// cameraEXIF is the APP1 segment of a FUJIFILM X-T4 shot at 35mm f/2.8 1/250s ISO 400
func cameraEXIF() []byte {
	ifd0 := func(exifOffset uint32) []ifdEntry {
		return []ifdEntry{
			asciiEntry(0x010F, "FUJIFILM"),
			asciiEntry(0x0110, "X-T4"),
			longEntry(0x8769, exifOffset),
		}
	}
	exifOffset := 8 + uint32(len(encodeIFD(8, ifd0(0))))

	var tiff []byte
	tiff = append(tiff, 'I', 'I', 42, 0, 8, 0, 0, 0)
	tiff = append(tiff, encodeIFD(8, ifd0(exifOffset))...)
	tiff = append(tiff, encodeIFD(exifOffset, []ifdEntry{
		rationalEntry(0x829A, 1, 250),
		rationalEntry(0x829D, 28, 10),
		shortEntry(0x8827, 400),
		asciiEntry(0x9003, "2023:05:06 07:08:09"),
		rationalEntry(0x920A, 35, 1),
		asciiEntry(0xA434, "XF35mmF1.4 R"),
	})...)

	payload := append([]byte("Exif\x00\x00"), tiff...)
	n := len(payload) + 2
	return append([]byte{0xFF, 0xE1, byte(n >> 8), byte(n)}, payload...)
}

var photoRed = color.RGBA{R: 200, G: 30, B: 30, A: 255}

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeJPEG writes a solid photo, with the camera EXIF spliced in after SOI when withEXIF is set
func writeJPEG(t *testing.T, path string, w, h int, withEXIF bool) string {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(w, h, photoRed), &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode test photo: %v", err)
	}
	data := buf.Bytes()
	if withEXIF {
		data = append(append(append([]byte{}, data[:2]...), cameraEXIF()...), data[2:]...)
	}

	writeBytes(t, path, data)
	return path
}

func writePNG(t *testing.T, path string, w, h int, c color.Color) string {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(w, h, c)); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	writeBytes(t, path, buf.Bytes())
	return path
}

func writeBytes(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return (r+g+b)/3 < 0x6000
}

// darkPixels counts dark pixels of img inside rect
func darkPixels(img image.Image, rect image.Rectangle) int {
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if isDark(img.At(x, y)) {
				n++
			}
		}
	}
	return n
}
