package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"clipfit/domain/video"
)

// ProbeFormat selects how ffprobe prints the duration
type ProbeFormat int

const (
	// ProbeJSON asks for {"format":{"duration":"12.34"}}
	ProbeJSON ProbeFormat = iota
	// ProbeBare asks for a single bare number
	ProbeBare
)

// Prober implements video.DurationProber using ffprobe
type Prober struct {
	opts   options
	format ProbeFormat
}

// NewProber creates a new ffprobe-based duration prober
func NewProber(opts ...Option) *Prober {
	return &Prober{opts: newOptions(opts), format: ProbeJSON}
}

// WithFormat returns a copy of the prober that requests the given output format
func (p *Prober) WithFormat(format ProbeFormat) *Prober {
	cp := *p
	cp.format = format
	return &cp
}

// Args returns the ffprobe arguments for path
func (p *Prober) Args(path string) []string {
	of := "json"
	if p.format == ProbeBare {
		of = "default=noprint_wrappers=1:nokey=1"
	}
	return []string{"-v", "error", "-show_entries", "format=duration", "-of", of, path}
}

// ProbeDuration implements video.DurationProber
func (p *Prober) ProbeDuration(ctx context.Context, path string) (float64, error) {
	out, err := p.opts.output(ctx, video.ErrProbeFailure, p.opts.ffprobePath, p.Args(path)...)
	if err != nil {
		return 0, err
	}

	seconds, err := ParseDuration(out)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", video.ErrProbeFailure, path, err)
	}
	return seconds, nil
}

// VerifyInstalled checks that ffprobe is available
func (p *Prober) VerifyInstalled(ctx context.Context) error {
	return p.opts.verify(ctx, p.opts.ffprobePath)
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ParseDuration reads a positive duration from either the JSON or the bare ffprobe output
func ParseDuration(out []byte) (float64, error) {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return 0, fmt.Errorf("empty output")
	}

	if strings.HasPrefix(text, "{") {
		var parsed probeOutput
		if err := json.Unmarshal([]byte(text), &parsed); err != nil {
			return 0, fmt.Errorf("parse json: %w", err)
		}
		text = strings.TrimSpace(parsed.Format.Duration)
	}

	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", text, err)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, fmt.Errorf("invalid duration %v", seconds)
	}
	return seconds, nil
}

// Ensure Prober implements video.DurationProber
var _ video.DurationProber = (*Prober)(nil)
