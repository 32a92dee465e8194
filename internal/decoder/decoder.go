// Package decoder turns a source file into a normalized in-memory image.
package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnknownFormat is returned when the content matches no registered codec.
var ErrUnknownFormat = image.ErrFormat

// DecodeError reports a source that could not be opened or decoded.
type DecodeError struct {
	Src string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Src, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// Image is a decoded source with its dimensions and color model made explicit.
type Image struct {
	image.Image
	Width        int
	Height       int
	Model        ColorModel
	SourceFormat string // as sniffed from content: "png", "jpeg", "webp", ...
	Size         int64  // encoded source size in bytes
}

// Decode reads the file at path and decodes it. The source format is
// inferred from content, never from the extension. EXIF orientation is
// applied so JPEGs come out upright.
func Decode(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &DecodeError{Src: path, Err: err}
	}
	if info.IsDir() {
		return nil, &DecodeError{Src: path, Err: errors.New("is a directory")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Src: path, Err: err}
	}
	return DecodeBytes(path, data)
}

// DecodeBytes decodes an in-memory source; src is only used for errors.
func DecodeBytes(src string, data []byte) (*Image, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Src: src, Err: err}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Src: src, Err: fmt.Errorf("%s: %w", format, err)}
	}

	b := img.Bounds()
	return &Image{
		Image:        img,
		Width:        b.Dx(),
		Height:       b.Dy(),
		Model:        ModelOf(img),
		SourceFormat: format,
		Size:         int64(len(data)),
	}, nil
}

// Opaque reports whether every pixel of img is fully opaque.
func Opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// ColorModel names the pixel layout of a decoded image.
type ColorModel string

const (
	Gray8    ColorModel = "gray8"
	Gray16   ColorModel = "gray16"
	RGB8     ColorModel = "rgb8"
	RGBA8    ColorModel = "rgba8"
	RGB16    ColorModel = "rgb16"
	RGBA16   ColorModel = "rgba16"
	CMYK8    ColorModel = "cmyk8"
	Paletted ColorModel = "paletted"
)

// ModelOf classifies img. Opaque 8/16-bit RGBA buffers report as RGB.
func ModelOf(img image.Image) ColorModel {
	switch m := img.(type) {
	case *image.Gray:
		return Gray8
	case *image.Gray16:
		return Gray16
	case *image.Paletted:
		return Paletted
	case *image.CMYK:
		return CMYK8
	case *image.YCbCr:
		return RGB8
	case *image.RGBA64, *image.NRGBA64:
		if Opaque(m) {
			return RGB16
		}
		return RGBA16
	}

	switch img.ColorModel() {
	case color.GrayModel:
		return Gray8
	case color.Gray16Model:
		return Gray16
	case color.CMYKModel:
		return CMYK8
	case color.RGBA64Model, color.NRGBA64Model:
		if Opaque(img) {
			return RGB16
		}
		return RGBA16
	}
	if Opaque(img) {
		return RGB8
	}
	return RGBA8
}
