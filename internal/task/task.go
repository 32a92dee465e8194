package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ConversionTask is one requested source-to-output conversion.
type ConversionTask struct {
	Format  Format `json:"format"`
	Name    string `json:"name"`    // output base name, extension is derived from Format
	Quality int8   `json:"quality"` // 0-100, used by WEBP and JPEG
	Src     string `json:"src"`
}

// Request is the payload of a single convert call.
type Request struct {
	Files        []ConversionTask `json:"files"`
	FolderToSave string           `json:"folder_to_save"`
}

// UnmarshalJSON also accepts the camelCase "folderToSave" key.
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw struct {
		Files        []ConversionTask `json:"files"`
		FolderToSave string           `json:"folder_to_save"`
		FolderCamel  string           `json:"folderToSave"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Files = raw.Files
	r.FolderToSave = raw.FolderToSave
	if r.FolderToSave == "" {
		r.FolderToSave = raw.FolderCamel
	}
	return nil
}

// Validate checks the request-level preconditions that do not depend on
// individual tasks.
func (r *Request) Validate() error {
	if r.FolderToSave == "" {
		return errors.New("folder_to_save is required")
	}
	info, err := os.Stat(r.FolderToSave)
	if err != nil {
		return fmt.Errorf("stat %s: %w", r.FolderToSave, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.FolderToSave)
	}
	return nil
}

// ReadRequest decodes a Request from r.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return &req, nil
}

// LoadRequest reads a Request from a JSON file, or from stdin when path is "-".
func LoadRequest(path string) (*Request, error) {
	if path == "-" {
		return ReadRequest(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open request: %w", err)
	}
	defer f.Close()
	return ReadRequest(f)
}
