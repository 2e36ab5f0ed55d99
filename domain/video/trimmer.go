package video

import "context"

// Trimmer defines the interface for stream-copy trimming
// This is a port that can be implemented by different infrastructure adapters
type Trimmer interface {
	// Trim cuts the requested range out of the source and writes it to outputPath
	Trim(ctx context.Context, req *TrimRequest, outputPath string) error
}

// DurationProber reads the container-level duration of a media file
type DurationProber interface {
	// ProbeDuration returns the duration in seconds
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// Compressor re-encodes a file according to a CompressionPlan
type Compressor interface {
	Compress(ctx context.Context, inputPath, outputPath string, plan *CompressionPlan) error
}

// FileChecker defines the interface for checking file existence
// This is used to validate that source files exist before trimming
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// FileSizer reports the size of a file on disk
type FileSizer interface {
	Size(path string) (int64, error)
}

// TempNamer hands out per-request temp file paths
type TempNamer interface {
	// TempPath returns a path like <tempdir>/<prefix>_<requestID><ext>
	TempPath(prefix, requestID, ext string) string
}

// TrimResult contains the result of a successful trim
type TrimResult struct {
	OutputPath string
	SizeBytes  int64
}

// FitOutcome contains the result of fitting a file under a size ceiling
type FitOutcome struct {
	Path          string
	SizeBytes     int64
	WasCompressed bool
}
