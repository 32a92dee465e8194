package report

// Report is the structured outcome of one batch.
type Report struct {
	Version      int       `json:"version"`
	BatchID      string    `json:"batch_id"`
	GeneratedAt  string    `json:"generated_at"`
	FolderToSave string    `json:"folder_to_save"`
	Requested    int       `json:"requested"`
	Succeeded    int       `json:"succeeded"`
	Outputs      []Output  `json:"outputs"`
	Failures     []Failure `json:"failures"`
	Stats        Stats     `json:"stats"`
}

// Output describes one file the batch produced.
type Output struct {
	Task         string `json:"task"`
	Format       string `json:"format"` // "WEBP", "JPEG", ...
	Src          string `json:"src"`
	Path         string `json:"path"` // relative to folder_to_save
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ColorModel   string `json:"color_model"`
	SourceFormat string `json:"source_format"`
	InputSize    int64  `json:"input_size"`
	Size         int64  `json:"size"` // bytes on disk
	Hash         string `json:"hash"` // first 16 hex chars of xxhash64
}

// Stage is the step of a task's conversion where it failed.
type Stage string

const (
	StageDecode Stage = "decode"
	StageEncode Stage = "encode"
)

// Failure records one task that produced no output.
type Failure struct {
	Task   string `json:"task"`
	Format string `json:"format"`
	Src    string `json:"src"`
	Stage  Stage  `json:"stage"`
	Error  string `json:"error"`
}

// Stats aggregates batch metrics.
type Stats struct {
	DecodeFailures   int   `json:"decode_failures"`
	EncodeFailures   int   `json:"encode_failures"`
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// DefaultFilename is the report name used when writing into the output folder.
const DefaultFilename = "batchconv.report.json"
