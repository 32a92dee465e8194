package encoder

import (
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/AnyUserName/batchconv/internal/decoder"
	"github.com/AnyUserName/batchconv/internal/task"
)

// maxWebPDimension is the largest side libwebp accepts.
const maxWebPDimension = 16383

// WebPEncoder compresses lossy WebP in memory with libwebp.
// The quality value maps directly onto libwebp's 0-100 scale.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() task.Format { return task.WEBP }
func (e *WebPEncoder) Extension() string   { return task.WEBP.Extension() }

func (e *WebPEncoder) CheckQuality(quality int8) error { return checkQuality(quality) }

func (e *WebPEncoder) Encode(img image.Image, quality int8) ([]byte, error) {
	if err := checkQuality(quality); err != nil {
		return nil, err
	}
	compress, err := newWebPCompressor(img)
	if err != nil {
		return nil, err
	}

	data, err := compress(img, float32(quality))
	if err != nil {
		return nil, fmt.Errorf("webp: %w", err)
	}
	return data, nil
}

type webpCompressor func(m image.Image, quality float32) ([]byte, error)

// newWebPCompressor picks the libwebp entry point matching the image's
// pixel layout, or rejects images libwebp cannot take.
func newWebPCompressor(img image.Image) (webpCompressor, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedLayout)
	}
	if b.Dx() > maxWebPDimension || b.Dy() > maxWebPDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d px",
			ErrUnsupportedLayout, b.Dx(), b.Dy(), maxWebPDimension)
	}

	switch decoder.ModelOf(img) {
	case decoder.Gray8, decoder.Gray16:
		return webp.EncodeGray, nil
	case decoder.RGB8, decoder.RGB16, decoder.CMYK8:
		return webp.EncodeRGB, nil
	default:
		return encodeStraightRGBA, nil
	}
}

// encodeStraightRGBA hands libwebp non-premultiplied samples. The library
// passes *image.RGBA pixels through untouched but converts every other type
// via color.RGBA, which would premultiply them.
func encodeStraightRGBA(m image.Image, quality float32) ([]byte, error) {
	n := imaging.Clone(m)
	return webp.EncodeRGBA(&image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}, quality)
}
