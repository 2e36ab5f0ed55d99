package clipboard

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"clipfit/domain/claim"
	"clipfit/infrastructure/command"
)

// DefaultTimeout bounds each clipboard tool invocation
const DefaultTimeout = 2 * time.Second

// WLCopy implements claim.Clipboard using wl-copy
type WLCopy struct {
	tool    string
	timeout time.Duration
	runner  command.Runner
	logger  zerolog.Logger
}

// Option is a functional option for configuring WLCopy
type Option func(*WLCopy)

// WithTool sets a custom clipboard executable
func WithTool(tool string) Option {
	return func(w *WLCopy) {
		if tool != "" {
			w.tool = tool
		}
	}
}

// WithTimeout sets the per-invocation bound
func WithTimeout(d time.Duration) Option {
	return func(w *WLCopy) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) Option {
	return func(w *WLCopy) {
		w.runner = runner
	}
}

// WithLogger sets the adapter logger
func WithLogger(logger zerolog.Logger) Option {
	return func(w *WLCopy) {
		w.logger = logger
	}
}

// New creates a wl-copy clipboard publisher
func New(opts ...Option) *WLCopy {
	w := &WLCopy{
		tool:    "wl-copy",
		timeout: DefaultTimeout,
		runner:  &command.ExecRunner{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FileURI returns the file:// URI for an absolute path
func FileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: abs}).String()
}

// PublishFile places the file URI on the clipboard and the plain path on the primary selection
func (w *WLCopy) PublishFile(ctx context.Context, path string) error {
	if err := w.invoke(ctx, "-t", "text/uri-list", FileURI(path)); err != nil {
		return err
	}
	if err := w.invoke(ctx, "-p", path); err != nil {
		// The clipboard selection already holds the file
		w.logger.Warn().Err(err).Msg("primary selection not updated")
	}
	return nil
}

func (w *WLCopy) invoke(ctx context.Context, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	stderr, err := w.runner.Run(ctx, w.tool, args...)
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s not installed", claim.ErrClipboardUnavailable, w.tool)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s timed out after %s", claim.ErrClipboardUnavailable, w.tool, w.timeout)
	}
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		msg = err.Error()
	}
	return fmt.Errorf("%s failed: %s", w.tool, msg)
}

// Ensure WLCopy implements claim.Clipboard
var _ claim.Clipboard = (*WLCopy)(nil)
