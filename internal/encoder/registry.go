package encoder

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/batchconv/internal/task"
)

// Registry maps each output format to its adapter.
type Registry struct {
	encoders map[task.Format]Encoder
}

// NewRegistry creates a registry with an adapter for every format.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[task.Format]Encoder, len(task.Formats)),
	}

	all := []Encoder{
		&WebPEncoder{},
		&JPEGEncoder{},
		&PNGEncoder{},
		&TIFFEncoder{},
		&BMPEncoder{},
	}
	for _, enc := range all {
		r.Register(enc)
	}
	return r
}

// Register adds or replaces the adapter for enc.Format().
func (r *Registry) Register(enc Encoder) {
	r.encoders[enc.Format()] = enc
}

// Get returns the adapter for f.
func (r *Registry) Get(f task.Format) (Encoder, error) {
	enc, ok := r.encoders[f]
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoEncoder, f)
	}
	return enc, nil
}

// Formats returns the registered formats in enum order.
func (r *Registry) Formats() []task.Format {
	var result []task.Format
	for _, f := range task.Formats {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// OutputPath derives <folder>/<name>.<ext> for t. The extension always
// comes from the format; any extension-like suffix in the name is kept
// as part of the base name. Names with a path separator are rejected so
// every output stays directly inside folder.
func (r *Registry) OutputPath(folder string, t task.ConversionTask) (string, error) {
	if strings.ContainsAny(t.Name, `/\`) {
		return "", &EncodeError{Format: t.Format, Path: folder, Err: fmt.Errorf("%w: %q", ErrInvalidName, t.Name)}
	}
	return filepath.Join(folder, t.Name+"."+t.Format.Extension()), nil
}

// Save looks up the adapter for f and writes img to path.
func (r *Registry) Save(f task.Format, img image.Image, quality int8, path string) error {
	enc, err := r.Get(f)
	if err != nil {
		return &EncodeError{Format: f, Path: path, Err: err}
	}
	return Save(enc, img, quality, path)
}

// String returns a summary of registered encoders.
func (r *Registry) String() string {
	var parts []string
	for _, f := range r.Formats() {
		parts = append(parts, fmt.Sprintf("%s(.%s)", f, r.encoders[f].Extension()))
	}
	if len(parts) == 0 {
		return "no encoders registered"
	}
	return "encoders: " + strings.Join(parts, ", ")
}
