package encoder

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/batchconv/internal/task"
)

// TIFFEncoder writes deflate-compressed TIFF. Quality is ignored.
type TIFFEncoder struct{}

func (e *TIFFEncoder) Format() task.Format { return task.TIFF }
func (e *TIFFEncoder) Extension() string   { return task.TIFF.Extension() }

func (e *TIFFEncoder) EncodeTo(w io.Writer, img image.Image, _ int8) error {
	return imaging.Encode(w, img, imaging.TIFF)
}

// BMPEncoder writes uncompressed BMP. Quality is ignored.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() task.Format { return task.BMP }
func (e *BMPEncoder) Extension() string   { return task.BMP.Extension() }

func (e *BMPEncoder) EncodeTo(w io.Writer, img image.Image, _ int8) error {
	return imaging.Encode(w, img, imaging.BMP)
}
