package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/batchconv/internal/hasher"
)

func TestReportRoundtrip(t *testing.T) {
	r := New("b-1", "/out", 2)
	r.AddOutput(Output{
		Task: "a", Format: "PNG", Src: "a.jpg", Path: "a.png",
		Width: 10, Height: 10, ColorModel: "rgb8", SourceFormat: "jpeg",
		InputSize: 500, Size: 300, Hash: "0123456789abcdef",
	})
	r.AddFailure(Failure{Task: "b", Format: "WEBP", Src: "missing.png", Stage: StageDecode, Error: "no such file"})

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	r2, err := ReadJSON(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if r2.Version != SupportedVersion {
		t.Errorf("version: got %d", r2.Version)
	}
	if r2.BatchID != "b-1" || r2.Requested != 2 || r2.Succeeded != 1 {
		t.Errorf("header: got %+v", r2)
	}
	if len(r2.Outputs) != 1 || r2.Outputs[0].Hash != "0123456789abcdef" {
		t.Errorf("outputs: got %+v", r2.Outputs)
	}
	if len(r2.Failures) != 1 || r2.Failures[0].Stage != StageDecode {
		t.Errorf("failures: got %+v", r2.Failures)
	}
	if r2.Stats.DecodeFailures != 1 || r2.Stats.EncodeFailures != 0 {
		t.Errorf("stats: got %+v", r2.Stats)
	}
	if r2.Stats.TotalInputBytes != 500 || r2.Stats.TotalOutputBytes != 300 {
		t.Errorf("byte stats: got %+v", r2.Stats)
	}
}

func TestEmptyReportEncodesLists(t *testing.T) {
	data, err := json.Marshal(New("x", "/out", 0))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"outputs":[]`) || !strings.Contains(s, `"failures":[]`) {
		t.Errorf("empty lists should encode as []: %s", s)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"batch_id": "abc",
		"future_field": true,
		"requested": 0,
		"succeeded": 0,
		"outputs": [],
		"failures": [],
		"stats": {"decode_failures": 0, "new_stat": 3}
	}`
	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if r.BatchID != "abc" {
		t.Errorf("batch id: got %q", r.BatchID)
	}
}

func writeOutput(t *testing.T, dir, name string, data []byte) Output {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
	return Output{
		Task: strings.TrimSuffix(name, filepath.Ext(name)), Format: "PNG", Path: name,
		Width: 1, Height: 1, Size: int64(len(data)), Hash: hasher.ContentHash(data, hasher.DefaultLen),
	}
}

func TestValidate_OK(t *testing.T) {
	dir := t.TempDir()
	r := New("v", dir, 2)
	r.AddOutput(writeOutput(t, dir, "a.png", []byte("aaaa")))
	r.AddFailure(Failure{Task: "b", Stage: StageEncode, Error: "disk full"})

	if errs := Validate(r, dir); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidate_Mismatches(t *testing.T) {
	dir := t.TempDir()
	r := New("v", dir, 3)
	o := writeOutput(t, dir, "a.png", []byte("aaaa"))
	o.Size = 99
	r.AddOutput(o)
	o2 := writeOutput(t, dir, "b.png", []byte("bbbb"))
	o2.Hash = "ffffffffffffffff"
	r.AddOutput(o2)
	r.AddOutput(Output{Task: "c", Path: "c.png", Width: 1, Height: 1})

	errs := Validate(r, dir)
	joined := strings.Join(errs, "\n")
	for _, want := range []string{"size mismatch", "hash mismatch", "file not found"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, errs)
		}
	}
}

func TestValidate_OverwrittenPath(t *testing.T) {
	dir := t.TempDir()
	r := New("v", dir, 2)

	first := writeOutput(t, dir, "same.png", []byte("first version"))
	second := writeOutput(t, dir, "same.png", []byte("second"))
	r.AddOutput(first)
	r.AddOutput(second)

	if errs := Validate(r, dir); len(errs) != 0 {
		t.Errorf("only the last record for a path should be checked: %v", errs)
	}
}

func TestValidate_Counts(t *testing.T) {
	r := New("v", t.TempDir(), 1)
	r.Succeeded = 2
	r.Version = 9

	errs := Validate(r, t.TempDir())
	if len(errs) < 3 {
		t.Errorf("expected version, succeeded and requested errors, got %v", errs)
	}
}
