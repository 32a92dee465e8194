package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/batchconv/internal/config"
	"github.com/AnyUserName/batchconv/internal/logger"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "batchconv",
	Short: "Batch image converter (WebP, JPEG, PNG, TIFF, BMP)",
	Long: `batchconv converts a list of source images into WebP, JPEG, PNG,
TIFF or BMP files. Each task picks its own output format and quality;
a failing task is logged and skipped without stopping the batch.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug log level)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (YAML)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"batchconv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err = logger.New(level, cfg.Log.Format, os.Stderr)
	return err
}
