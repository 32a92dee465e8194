//go:build ignore

// gen_fixtures creates sample inputs and a request file for a manual
// end-to-end run.
// Usage: go run gen_fixtures.go <fixture_dir> <out_dir>
//
//	batchconv convert <fixture_dir>/request.json
package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

type fixtureTask struct {
	Format  string `json:"format"`
	Name    string `json:"name"`
	Quality int    `json:"quality"`
	Src     string `json:"src"`
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <fixture_dir> <out_dir>")
		os.Exit(1)
	}
	dir, out := os.Args[1], os.Args[2]
	os.MkdirAll(dir, 0o755)
	os.MkdirAll(out, 0o755)

	banner := filepath.Join(dir, "banner.jpg")
	logo := filepath.Join(dir, "logo.png")
	corrupt := filepath.Join(dir, "corrupt_bytes.dat")

	writeJPEG(banner, gradient(400, 225))
	writePNG(logo, alphaGradient(100, 100))
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		panic(err)
	}

	tasks := []fixtureTask{
		{"WEBP", "banner", 80, banner},
		{"JPEG", "banner", 60, banner},
		{"PNG", "logo", 0, logo},
		{"TIFF", "logo", 0, logo},
		{"BMP", "banner", 0, banner},
		{"WEBP", "logo", 90, logo},
		{"TIFF", "broken", 0, corrupt},
		{"PNG", "missing", 0, filepath.Join(dir, "missing.png")},
	}
	req := map[string]any{"files": tasks, "folder_to_save": out}
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "request.json"), data, 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 3 inputs and request.json (%d tasks, expect %d converted) in %s\n",
		len(tasks), len(tasks)-2, dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
