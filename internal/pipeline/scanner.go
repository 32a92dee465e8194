package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AnyUserName/batchconv/internal/task"
)

// imageExtensions lists recognized source image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// ScanTasks walks inputDir and returns one task per recognized image,
// all targeting format at quality. Task names are the file base names
// without extension; hidden directories are skipped. Results follow
// filepath.Walk's lexical order.
func ScanTasks(inputDir string, format task.Format, quality int8) ([]task.ConversionTask, error) {
	var tasks []task.ConversionTask

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != inputDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		tasks = append(tasks, task.ConversionTask{
			Format:  format,
			Name:    strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())),
			Quality: quality,
			Src:     path,
		})
		return nil
	})

	return tasks, err
}

// DedupeBySrc drops tasks whose source path was already queued, keeping
// the first occurrence.
func DedupeBySrc(tasks []task.ConversionTask) []task.ConversionTask {
	seen := make(map[string]bool, len(tasks))
	out := tasks[:0:0]
	for _, t := range tasks {
		key := filepath.Clean(t.Src)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
