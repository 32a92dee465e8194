package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/batchconv/internal/report"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeFixture(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestConvertStatsValidate(t *testing.T) {
	t.Setenv("BATCHCONV_LOG_LEVEL", "error")
	in := t.TempDir()
	out := t.TempDir()

	src := filepath.Join(in, "pic.png")
	writeFixture(t, src)

	reqPath := filepath.Join(in, "request.json")
	body := `{"files": [
		{"format": "JPG", "name": "pic", "quality": 80, "src": "` + filepath.ToSlash(src) + `"},
		{"format": "WEBP", "name": "gone", "quality": 80, "src": "` + filepath.ToSlash(filepath.Join(in, "gone.png")) + `"}
	], "folderToSave": "` + filepath.ToSlash(out) + `"}`
	if err := os.WriteFile(reqPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "convert", reqPath)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, got)
	}
	if !strings.Contains(got, "Processed 1 of 2 images") {
		t.Errorf("convert output: %q", got)
	}
	if _, err := os.Stat(filepath.Join(out, "pic.jpg")); err != nil {
		t.Errorf("missing output: %v", err)
	}

	r, err := report.ReadJSON(out)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.Succeeded != 1 || len(r.Failures) != 1 || r.Failures[0].Task != "gone" {
		t.Errorf("report: %+v", r)
	}

	got, err = run(t, "stats", out)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(got, "Processed:       1 of 2") || !strings.Contains(got, "JPEG") {
		t.Errorf("stats output: %q", got)
	}

	got, err = run(t, "validate", filepath.Join(out, report.DefaultFilename))
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, got)
	}
	if !strings.Contains(got, "Report is valid") {
		t.Errorf("validate output: %q", got)
	}

	if err := os.Remove(filepath.Join(out, "pic.jpg")); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "validate", out); err == nil {
		t.Error("validate should fail once an output is gone")
	}
}

func TestConvertDir(t *testing.T) {
	t.Setenv("BATCHCONV_LOG_LEVEL", "error")
	in := t.TempDir()
	out := t.TempDir()
	writeFixture(t, filepath.Join(in, "one.png"))
	writeFixture(t, filepath.Join(in, "two.png"))

	// Flags persist on the package-level command between Execute calls.
	t.Cleanup(func() {
		convertInputDir, convertOutDir, convertFormat, convertQuality, convertNoReport = "", "", "", -1, false
	})

	got, err := run(t, "convert", "--dir", in, "--out", out, "--format", "bmp", "--quality", "0", "--no-report")
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, got)
	}
	if !strings.Contains(got, "Processed 2 of 2 images") {
		t.Errorf("output: %q", got)
	}
	for _, name := range []string{"one.bmp", "two.bmp"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s", name)
		}
	}
	if _, err := os.Stat(filepath.Join(out, report.DefaultFilename)); !os.IsNotExist(err) {
		t.Error("report written despite --no-report")
	}
}

func TestConvertRejectsMissingFolder(t *testing.T) {
	t.Setenv("BATCHCONV_LOG_LEVEL", "error")
	in := t.TempDir()
	reqPath := filepath.Join(in, "request.json")
	body := `{"files": [], "folder_to_save": "` + filepath.ToSlash(filepath.Join(in, "nope")) + `"}`
	if err := os.WriteFile(reqPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "convert", reqPath); err == nil {
		t.Error("expected error for missing output folder")
	}
}

func TestConvertEmptyBatchLeavesFolderUntouched(t *testing.T) {
	t.Setenv("BATCHCONV_LOG_LEVEL", "error")
	in := t.TempDir()
	out := t.TempDir()
	reqPath := filepath.Join(in, "request.json")
	body := `{"files": [], "folder_to_save": "` + filepath.ToSlash(out) + `"}`
	if err := os.WriteFile(reqPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "convert", reqPath)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, got)
	}
	if !strings.Contains(got, "Processed 0 of 0 images") {
		t.Errorf("output: %q", got)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("empty batch wrote %d entries", len(entries))
	}
}

func TestFormats(t *testing.T) {
	got, err := run(t, "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, want := range []string{"WEBP  .webp  buffer", "JPEG  .jpg", "PNG   .png", "TIFF  .tiff", "BMP   .bmp"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}
