package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/batchconv/internal/decoder"
	"github.com/AnyUserName/batchconv/internal/hasher"
	"github.com/AnyUserName/batchconv/internal/report"
	"github.com/AnyUserName/batchconv/internal/task"
)

// process runs one task through decode and encode. Exactly one of the
// results is meaningful: a failure, or the output record.
func (p *Pipeline) process(t task.ConversionTask, folder string) (out report.Output, fail *report.Failure) {
	stage := report.StageDecode
	defer func() {
		if r := recover(); r != nil {
			fail = newFailure(t, stage, fmt.Errorf("panic: %v", r))
		}
	}()

	img, err := decoder.Decode(t.Src)
	if err != nil {
		return out, newFailure(t, stage, err)
	}

	stage = report.StageEncode
	outPath, err := p.registry.OutputPath(folder, t)
	if err != nil {
		return out, newFailure(t, stage, err)
	}
	if err := p.registry.Save(t.Format, img.Image, t.Quality, outPath); err != nil {
		return out, newFailure(t, stage, err)
	}

	out = report.Output{
		Task:         t.Name,
		Format:       t.Format.String(),
		Src:          t.Src,
		Path:         relPath(folder, outPath),
		Width:        img.Width,
		Height:       img.Height,
		ColorModel:   string(img.Model),
		SourceFormat: img.SourceFormat,
		InputSize:    img.Size,
	}

	// The file is already in place; a hashing problem only leaves the
	// record without integrity data.
	hash, size, err := hasher.FileHash(outPath, hasher.DefaultLen)
	if err != nil {
		p.log.Warn().Err(err).Str("task", t.Name).Msg("hash output")
	} else {
		out.Hash = hash
		out.Size = size
	}
	return out, nil
}

func newFailure(t task.ConversionTask, stage report.Stage, err error) *report.Failure {
	return &report.Failure{
		Task:   t.Name,
		Format: t.Format.String(),
		Src:    t.Src,
		Stage:  stage,
		Error:  err.Error(),
	}
}

func relPath(folder, path string) string {
	rel, err := filepath.Rel(folder, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
