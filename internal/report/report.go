package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/batchconv/internal/hasher"
)

// New creates an empty report for a batch of requested tasks.
func New(batchID, folder string, requested int) *Report {
	return &Report{
		Version:      SupportedVersion,
		BatchID:      batchID,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		FolderToSave: folder,
		Requested:    requested,
		Outputs:      []Output{},
		Failures:     []Failure{},
	}
}

// AddOutput records a successful task.
func (r *Report) AddOutput(o Output) {
	r.Outputs = append(r.Outputs, o)
	r.Succeeded++
}

// AddFailure records a failed task.
func (r *Report) AddFailure(f Failure) {
	r.Failures = append(r.Failures, f)
}

// ComputeStats recalculates aggregate statistics.
func (r *Report) ComputeStats() {
	var s Stats
	for _, o := range r.Outputs {
		s.TotalInputBytes += o.InputSize
		s.TotalOutputBytes += o.Size
	}
	for _, f := range r.Failures {
		switch f.Stage {
		case StageDecode:
			s.DecodeFailures++
		case StageEncode:
			s.EncodeFailures++
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to path.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report. If path is a directory the default report
// filename inside it is used.
func ReadJSON(path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

// Validate checks the report for internal consistency and that every
// recorded output exists under baseDir with the recorded size and hash.
func Validate(r *Report, baseDir string) []string {
	var errs []string

	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if r.Succeeded != len(r.Outputs) {
		errs = append(errs, fmt.Sprintf("succeeded mismatch: %d != %d outputs", r.Succeeded, len(r.Outputs)))
	}
	if r.Succeeded < 0 || r.Succeeded > r.Requested {
		errs = append(errs, fmt.Sprintf("succeeded %d outside 0..%d", r.Succeeded, r.Requested))
	}
	if r.Succeeded+len(r.Failures) != r.Requested {
		errs = append(errs, fmt.Sprintf("requested %d != %d outputs + %d failures",
			r.Requested, r.Succeeded, len(r.Failures)))
	}

	// Later tasks may overwrite earlier outputs at the same path; only
	// the last record for a path describes what is on disk.
	last := map[string]int{}
	for i, o := range r.Outputs {
		last[o.Path] = i
	}

	for i, o := range r.Outputs {
		if o.Path == "" {
			errs = append(errs, fmt.Sprintf("output[%d] %q: missing path", i, o.Task))
			continue
		}
		if o.Width <= 0 || o.Height <= 0 {
			errs = append(errs, fmt.Sprintf("output[%d] %q: invalid dimensions %dx%d", i, o.Task, o.Width, o.Height))
		}
		if last[o.Path] != i {
			continue
		}

		full := filepath.Join(baseDir, o.Path)
		hash, size, err := hasher.FileHash(full, hasher.DefaultLen)
		if err != nil {
			errs = append(errs, fmt.Sprintf("output[%d] %q: file not found: %s", i, o.Task, o.Path))
			continue
		}
		if size != o.Size {
			errs = append(errs, fmt.Sprintf("output[%d] %q: size mismatch: report=%d, disk=%d", i, o.Task, o.Size, size))
		}
		if o.Hash != "" && hash != o.Hash {
			errs = append(errs, fmt.Sprintf("output[%d] %q: hash mismatch: report=%s, disk=%s", i, o.Task, o.Hash, hash))
		}
	}

	for i, f := range r.Failures {
		if f.Stage != StageDecode && f.Stage != StageEncode {
			errs = append(errs, fmt.Sprintf("failure[%d] %q: unknown stage %q", i, f.Task, f.Stage))
		}
	}

	return errs
}
