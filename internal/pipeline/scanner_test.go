package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/batchconv/internal/task"
)

func TestScanTasks(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{
		"a.png",
		"b.JPG",
		"notes.txt",
		"nested/c.tiff",
		".hidden/d.png",
	} {
		full := filepath.Join(dir, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tasks, err := ScanTasks(dir, task.WEBP, 100)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	want := map[string]string{
		"a": filepath.Join(dir, "a.png"),
		"b": filepath.Join(dir, "b.JPG"),
		"c": filepath.Join(dir, "nested", "c.tiff"),
	}
	if len(tasks) != len(want) {
		t.Fatalf("tasks: got %+v", tasks)
	}
	for _, tk := range tasks {
		if want[tk.Name] != tk.Src {
			t.Errorf("task %q: src %q, want %q", tk.Name, tk.Src, want[tk.Name])
		}
		if tk.Format != task.WEBP || tk.Quality != 100 {
			t.Errorf("task %q: got %s q%d", tk.Name, tk.Format, tk.Quality)
		}
	}
}

func TestScanTasks_MissingDir(t *testing.T) {
	if _, err := ScanTasks(filepath.Join(t.TempDir(), "nope"), task.PNG, 0); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDedupeBySrc(t *testing.T) {
	in := []task.ConversionTask{
		{Name: "a", Src: "/img/a.png", Format: task.WEBP},
		{Name: "b", Src: "/img/b.png"},
		{Name: "a2", Src: "/img/./a.png", Format: task.PNG},
	}
	out := DedupeBySrc(in)
	if len(out) != 2 {
		t.Fatalf("got %+v", out)
	}
	if out[0].Name != "a" || out[0].Format != task.WEBP || out[1].Name != "b" {
		t.Errorf("first occurrence must win: %+v", out)
	}
	if len(DedupeBySrc(nil)) != 0 {
		t.Error("nil input")
	}
}
