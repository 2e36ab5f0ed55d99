package video

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds for the trim and size-fit pipeline
var (
	ErrSourceNotFound  = errors.New("source not found")
	ErrEncodeFailure   = errors.New("encode failed")
	ErrProbeFailure    = errors.New("probe failed")
	ErrDurationUnknown = errors.New("duration unknown")
	ErrCompressFailure = errors.New("compression failed")
	ErrTimeout         = errors.New("external tool timed out")
)

// ToolError describes a failed external tool invocation
type ToolError struct {
	Kind   error  // one of the Err* kinds above
	Tool   string // executable name, e.g. ffmpeg
	Stderr string // diagnostic text written by the tool
	Err    error  // underlying exec error
}

// NewToolError creates a ToolError, trimming surrounding whitespace from stderr
func NewToolError(kind error, tool string, stderr []byte, err error) *ToolError {
	return &ToolError{
		Kind:   kind,
		Tool:   tool,
		Stderr: strings.TrimSpace(string(stderr)),
		Err:    err,
	}
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Tool)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

// Unwrap exposes both the kind and the underlying error to errors.Is / errors.As
func (e *ToolError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
