package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/batchconv/internal/pipeline"
	"github.com/AnyUserName/batchconv/internal/report"
	"github.com/AnyUserName/batchconv/internal/task"
)

var (
	convertInputDir string
	convertOutDir   string
	convertFormat   string
	convertQuality  int
	convertNoReport bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [request.json ...]",
	Short: "Convert a batch of images",
	Long: `Converts the tasks of one or more request files ("-" reads stdin),
plus every image found under --dir, into the output folder.

A request file looks like:

  {"files": [{"format": "WEBP", "name": "a", "quality": 80, "src": "a.png"}],
   "folder_to_save": "out"}

The output folder must already exist. Output files are named
<name>.<ext>, where ext is derived from the format, and overwrite any
existing file of that name. Task names may not contain a path separator.
The batch report is written next to the outputs unless --no-report is
set or the batch is empty.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertInputDir, "dir", "d", "", "add every image under this directory")
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "", "output folder (overrides folder_to_save)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "format for --dir tasks (default from config)")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", -1, "quality 0-100 for --dir tasks (default from config)")
	convertCmd.Flags().BoolVar(&convertNoReport, "no-report", false, "do not write the batch report")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && convertInputDir == "" {
		return fmt.Errorf("nothing to convert: pass a request file or --dir")
	}
	start := time.Now()

	req, err := buildRequest(args)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	p := pipeline.New(pipeline.Config{
		BatchQuality: int8(cfg.Convert.BatchQuality),
		Logger:       &log,
	})
	rep := p.Run(req.Files, req.FolderToSave)

	if cfg.Report.Enabled && !convertNoReport && len(req.Files) > 0 {
		path := filepath.Join(req.FolderToSave, cfg.Report.Filename)
		if err := report.WriteJSON(rep, path); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Debug().Str("path", path).Msg("report written")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d of %d images in %s\n",
		rep.Succeeded, rep.Requested, time.Since(start).Round(time.Millisecond))
	return nil
}

// buildRequest merges request files and a directory scan into one request.
func buildRequest(args []string) (*task.Request, error) {
	merged := &task.Request{}
	for _, path := range args {
		req, err := task.LoadRequest(path)
		if err != nil {
			return nil, err
		}
		merged.Files = append(merged.Files, req.Files...)
		if merged.FolderToSave == "" {
			merged.FolderToSave = req.FolderToSave
		}
	}

	if convertInputDir != "" {
		format, quality, err := scanDefaults()
		if err != nil {
			return nil, err
		}
		tasks, err := pipeline.ScanTasks(convertInputDir, format, quality)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", convertInputDir, err)
		}
		merged.Files = append(merged.Files, tasks...)
	}

	if convertOutDir != "" {
		merged.FolderToSave = convertOutDir
	}
	merged.Files = pipeline.DedupeBySrc(merged.Files)
	return merged, nil
}

func scanDefaults() (task.Format, int8, error) {
	name := cfg.Convert.DefaultFormat
	if convertFormat != "" {
		name = convertFormat
	}
	format, err := task.ParseFormat(name)
	if err != nil {
		return 0, 0, err
	}

	quality := cfg.Convert.DefaultQuality
	if convertQuality >= 0 {
		quality = convertQuality
	}
	if quality > 100 {
		return 0, 0, fmt.Errorf("quality %d outside 0-100", quality)
	}
	return format, int8(quality), nil
}
