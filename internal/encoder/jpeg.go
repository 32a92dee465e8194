package encoder

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/batchconv/internal/task"
)

// defaultJPEGQuality applies when a task leaves quality at 0.
const defaultJPEGQuality = 75

// JPEGEncoder writes baseline JPEG. Unlike the other raster adapters it
// honors the task quality.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() task.Format { return task.JPEG }
func (e *JPEGEncoder) Extension() string   { return task.JPEG.Extension() }

func (e *JPEGEncoder) CheckQuality(quality int8) error { return checkQuality(quality) }

func (e *JPEGEncoder) EncodeTo(w io.Writer, img image.Image, quality int8) error {
	if err := checkQuality(quality); err != nil {
		return err
	}
	q := int(quality)
	if q == 0 {
		q = defaultJPEGQuality
	}
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(q))
}
