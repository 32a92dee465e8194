package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/batchconv/internal/report"
	"github.com/AnyUserName/batchconv/internal/task"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a converted batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	r, err := report.ReadJSON(args[0])
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), r)
	return nil
}

func printStats(w io.Writer, r *report.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Report version:  %d\n", r.Version)
	fmt.Fprintf(w, "  Batch:           %s\n", r.BatchID)
	fmt.Fprintf(w, "  Generated:       %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "  Folder:          %s\n", r.FolderToSave)
	fmt.Fprintln(w)

	s := r.Stats
	fmt.Fprintf(w, "  Processed:       %d of %d\n", r.Succeeded, r.Requested)
	fmt.Fprintf(w, "  Input size:      %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:     %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Fprintf(w, "  Ratio:           %.1f%% of original\n", ratio)
	}
	fmt.Fprintln(w)

	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, o := range r.Outputs {
		fs := formatStats[o.Format]
		fs.count++
		fs.bytes += o.Size
		formatStats[o.Format] = fs
	}
	if len(formatStats) > 0 {
		fmt.Fprintln(w, "  Format breakdown:")
		for _, f := range task.Formats {
			if fs, ok := formatStats[f.String()]; ok {
				fmt.Fprintf(w, "    %-5s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Failures) > 0 {
		fmt.Fprintf(w, "  Failures (%d: %d decode, %d encode):\n",
			len(r.Failures), s.DecodeFailures, s.EncodeFailures)
		for _, f := range r.Failures {
			fmt.Fprintf(w, "    ✗ %-24s %-6s %s\n", truncKey(f.Task, 24), f.Stage, f.Error)
		}
		fmt.Fprintln(w)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
