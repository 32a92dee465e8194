package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/batchconv/internal/encoder"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List output formats and their file extensions",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	r := encoder.NewRegistry()
	out := cmd.OutOrStdout()
	for _, f := range r.Formats() {
		enc, err := r.Get(f)
		if err != nil {
			return err
		}
		kind := "stream"
		if _, ok := enc.(encoder.BufferEncoder); ok {
			kind = "buffer"
		}
		fmt.Fprintf(out, "  %-5s .%-5s %s\n", f, enc.Extension(), kind)
	}
	return nil
}
