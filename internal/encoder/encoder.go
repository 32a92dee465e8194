package encoder

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/AnyUserName/batchconv/internal/task"
)

var (
	// ErrQualityRange is returned by quality-driven encoders for values outside 0-100.
	ErrQualityRange = errors.New("quality out of range 0-100")

	// ErrUnsupportedLayout is returned when an encoder cannot accept the image geometry.
	ErrUnsupportedLayout = errors.New("unsupported image layout")

	// ErrInvalidName is returned for task names that would leave the output folder.
	ErrInvalidName = errors.New("task name contains a path separator")

	// ErrNoEncoder is returned when no adapter is registered for a format.
	ErrNoEncoder = errors.New("no encoder registered")
)

// Encoder is an output format adapter. Every encoder also implements
// exactly one of StreamEncoder or BufferEncoder.
type Encoder interface {
	// Format returns the output format this adapter produces.
	Format() task.Format

	// Extension returns the file extension without dot.
	Extension() string
}

// StreamEncoder writes the encoded image incrementally to w.
type StreamEncoder interface {
	Encoder
	EncodeTo(w io.Writer, img image.Image, quality int8) error
}

// BufferEncoder produces the whole encoded file in memory.
type BufferEncoder interface {
	Encoder
	Encode(img image.Image, quality int8) ([]byte, error)
}

// QualityChecker is implemented by encoders that consume quality. Save
// calls it before touching the destination.
type QualityChecker interface {
	CheckQuality(quality int8) error
}

// EncodeError reports a failed encode or output write.
type EncodeError struct {
	Format task.Format
	Path   string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s to %s: %v", e.Format, e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func checkQuality(quality int8) error {
	if quality < 0 || quality > 100 {
		return fmt.Errorf("%w: %d", ErrQualityRange, quality)
	}
	return nil
}
