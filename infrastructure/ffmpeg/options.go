package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"clipfit/domain/video"
	"clipfit/infrastructure/command"
)

// Option is a functional option shared by the ffmpeg adapters
type Option func(*options)

type options struct {
	ffmpegPath  string
	ffprobePath string
	runner      command.Runner
	timeout     time.Duration
	logger      zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      &command.ExecRunner{},
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ffmpegPath = path
		}
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ffprobePath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) Option {
	return func(o *options) {
		o.runner = runner
	}
}

// WithTimeout bounds every invocation; zero means no bound beyond the caller's context
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger used for command tracing
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func (o options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

// run executes tool and maps failures onto kind
func (o options) run(ctx context.Context, kind error, tool string, args ...string) error {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	o.logger.Debug().Str("cmd", tool+" "+strings.Join(args, " ")).Msg("running")
	stderr, err := o.runner.Run(ctx, tool, args...)
	if err != nil {
		return o.classify(ctx, kind, tool, stderr, err)
	}
	return nil
}

// output executes tool and returns stdout, mapping failures onto kind
func (o options) output(ctx context.Context, kind error, tool string, args ...string) ([]byte, error) {
	ctx, cancel := o.withTimeout(ctx)
	defer cancel()

	o.logger.Debug().Str("cmd", tool+" "+strings.Join(args, " ")).Msg("running")
	stdout, stderr, err := o.runner.Output(ctx, tool, args...)
	if err != nil {
		return nil, o.classify(ctx, kind, tool, stderr, err)
	}
	return stdout, nil
}

func (o options) classify(ctx context.Context, kind error, tool string, stderr []byte, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return video.NewToolError(kind, tool, stderr, errors.Join(video.ErrTimeout, err))
	}
	return video.NewToolError(kind, tool, stderr, err)
}

// verify checks that tool answers -version
func (o options) verify(ctx context.Context, tool string) error {
	if _, _, err := o.runner.Output(ctx, tool, "-version"); err != nil {
		return fmt.Errorf("%s not found or not executable: %w", tool, err)
	}
	return nil
}
