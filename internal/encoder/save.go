package encoder

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
)

// Save encodes img with enc and writes the result to path.
//
// Stream encoders write through a buffered file; if anything fails after
// the file was created it is removed, so a failed Save never leaves a
// truncated file behind. Buffer encoders produce the full payload first
// and write it with a single call. Quality is validated first, so a
// rejected value leaves an existing file at path as it was.
func Save(enc Encoder, img image.Image, quality int8, path string) error {
	if qc, ok := enc.(QualityChecker); ok {
		if err := qc.CheckQuality(quality); err != nil {
			return &EncodeError{Format: enc.Format(), Path: path, Err: err}
		}
	}

	var err error
	switch e := enc.(type) {
	case StreamEncoder:
		err = saveStream(e, img, quality, path)
	case BufferEncoder:
		err = saveBuffer(e, img, quality, path)
	default:
		err = fmt.Errorf("encoder %T has no encode capability", enc)
	}
	if err != nil {
		return &EncodeError{Format: enc.Format(), Path: path, Err: err}
	}
	return nil
}

func saveStream(enc StreamEncoder, img image.Image, quality int8, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	w := bufio.NewWriterSize(f, 64*1024)
	err = encodeTo(enc, w, img, quality)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close: %w", cerr)
	}
	if err != nil {
		if rerr := os.Remove(path); rerr != nil && !os.IsNotExist(rerr) {
			return fmt.Errorf("%w (cleanup: %v)", err, rerr)
		}
		return err
	}
	return nil
}

func saveBuffer(enc BufferEncoder, img image.Image, quality int8, path string) error {
	data, err := enc.Encode(img, quality)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// encodeTo turns an encoder panic into an error so the caller can still
// remove the half-written file.
func encodeTo(enc StreamEncoder, w io.Writer, img image.Image, quality int8) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("encoder panic: %v", r)
		}
	}()
	return enc.EncodeTo(w, img, quality)
}
