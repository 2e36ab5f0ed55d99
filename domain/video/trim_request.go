package video

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TrimRequest represents a request to cut [Start, End) out of a source video
type TrimRequest struct {
	SourcePath string
	Start      Timestamp
	End        Timestamp
}

// NewTrimRequest creates a new TrimRequest and validates it
func NewTrimRequest(sourcePath string, start, end Timestamp) (*TrimRequest, error) {
	req := &TrimRequest{
		SourcePath: sourcePath,
		Start:      start,
		End:        end,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks that the trim request is valid
func (r *TrimRequest) Validate() error {
	if r.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}

	if r.Start < 0 {
		return fmt.Errorf("start time %s must not be negative", r.Start)
	}

	if !r.End.After(r.Start) {
		return fmt.Errorf("end time %s must be after start time %s", r.End, r.Start)
	}

	return nil
}

// StartSeconds returns the seek offset in fractional seconds
func (r *TrimRequest) StartSeconds() float64 {
	return r.Start.Seconds()
}

// DurationSeconds returns the length of the cut in fractional seconds
func (r *TrimRequest) DurationSeconds() float64 {
	return (r.End - r.Start).Seconds()
}

// Duration returns the length of the cut as a Timestamp
func (r *TrimRequest) Duration() Timestamp {
	return r.End - r.Start
}

// SuggestedFilename returns the default name offered when saving the trim (trimmed_<source name>)
func (r *TrimRequest) SuggestedFilename() string {
	return "trimmed_" + filepath.Base(r.SourcePath)
}

// SourceExtension returns the lower-cased extension of the source file, including the dot
func (r *TrimRequest) SourceExtension() string {
	return strings.ToLower(filepath.Ext(r.SourcePath))
}
