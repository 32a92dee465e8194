package pipeline

import (
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AnyUserName/batchconv/internal/encoder"
	"github.com/AnyUserName/batchconv/internal/report"
	"github.com/AnyUserName/batchconv/internal/task"
)

// Config holds the parameters of a conversion pipeline.
type Config struct {
	// BatchQuality, when > 0, replaces the quality of every task.
	BatchQuality int8
	// Logger receives per-task and summary lines. Nil logs JSON lines
	// to stderr at info level.
	Logger *zerolog.Logger
}

// Pipeline converts batches of tasks one at a time, in order.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	log      zerolog.Logger
}

// New creates a pipeline with every output format registered.
func New(cfg Config) *Pipeline {
	log := zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		log:      log,
	}
}

// Registry exposes the format registry, e.g. to list or replace adapters.
func (p *Pipeline) Registry() *encoder.Registry { return p.registry }

// Run converts tasks in input order into folderToSave and returns the
// batch report. A failing task is recorded and skipped; it never stops
// the tasks after it. The folder is expected to exist already.
func (p *Pipeline) Run(tasks []task.ConversionTask, folderToSave string) *report.Report {
	batchID := uuid.NewString()
	log := p.log.With().Str("batch_id", batchID).Logger()
	rep := report.New(batchID, folderToSave, len(tasks))

	log.Debug().
		Int("tasks", len(tasks)).
		Str("folder", folderToSave).
		Str("registry", p.registry.String()).
		Msg("batch started")

	for i, t := range tasks {
		if p.cfg.BatchQuality > 0 {
			t.Quality = p.cfg.BatchQuality
		}

		log.Debug().
			Int("index", i).
			Str("task", t.Name).
			Stringer("format", t.Format).
			Int8("quality", t.Quality).
			Str("src", t.Src).
			Msg("converting")

		out, fail := p.process(t, folderToSave)
		if fail != nil {
			log.Error().
				Str("task", fail.Task).
				Str("stage", string(fail.Stage)).
				Str("src", fail.Src).
				Str("err", fail.Error).
				Msg("conversion failed")
			rep.AddFailure(*fail)
			continue
		}
		rep.AddOutput(out)
	}

	rep.ComputeStats()
	log.Info().
		Int("succeeded", rep.Succeeded).
		Int("requested", rep.Requested).
		Int("decode_failures", rep.Stats.DecodeFailures).
		Int("encode_failures", rep.Stats.EncodeFailures).
		Msg("batch complete")
	return rep
}

// ConvertImages converts files into folderToSave with default settings
// and returns how many produced an output file.
func ConvertImages(files []task.ConversionTask, folderToSave string) int {
	return New(Config{}).Run(files, folderToSave).Succeeded
}
