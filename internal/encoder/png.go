package encoder

import (
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/batchconv/internal/task"
)

// PNGEncoder writes lossless PNG. Quality is ignored.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() task.Format { return task.PNG }
func (e *PNGEncoder) Extension() string   { return task.PNG.Extension() }

func (e *PNGEncoder) EncodeTo(w io.Writer, img image.Image, _ int8) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression))
}
