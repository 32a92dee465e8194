package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Format is the closed set of output formats a task can target.
type Format uint8

const (
	WEBP Format = iota
	JPEG
	PNG
	TIFF
	BMP
)

// Formats lists every output format in enum order.
var Formats = []Format{WEBP, JPEG, PNG, TIFF, BMP}

var formatNames = [...]string{
	WEBP: "WEBP",
	JPEG: "JPEG",
	PNG:  "PNG",
	TIFF: "TIFF",
	BMP:  "BMP",
}

var formatExtensions = [...]string{
	WEBP: "webp",
	JPEG: "jpg",
	PNG:  "png",
	TIFF: "tiff",
	BMP:  "bmp",
}

// Valid reports whether f is one of the enumerated formats.
func (f Format) Valid() bool { return int(f) < len(formatNames) }

func (f Format) String() string {
	if !f.Valid() {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return formatNames[f]
}

// Extension returns the output file extension without dot.
// It panics on a value outside the enumeration.
func (f Format) Extension() string {
	if !f.Valid() {
		panic(fmt.Sprintf("task: no extension for %s", f))
	}
	return formatExtensions[f]
}

// ParseFormat resolves a format tag. Matching is case-insensitive and
// accepts "JPG" and "TIF" as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WEBP":
		return WEBP, nil
	case "JPEG", "JPG":
		return JPEG, nil
	case "PNG":
		return PNG, nil
	case "TIFF", "TIF":
		return TIFF, nil
	case "BMP":
		return BMP, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid format %d", f)
	}
	return []byte(formatNames[f]), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// UnmarshalJSON accepts either a tag string or the numeric enum index
// (WEBP=0 ... BMP=4).
func (f *Format) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 || n >= len(formatNames) {
			return fmt.Errorf("format index %d out of range", n)
		}
		*f = Format(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("format must be a string or integer: %w", err)
	}
	return f.UnmarshalText([]byte(s))
}
