package dialog

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"clipfit/domain/claim"
	"clipfit/infrastructure/command"
)

// KDialog implements claim.SavePicker with the KDE save-file dialog
type KDialog struct {
	tool   string
	runner command.Runner
}

// KDialogOption is a functional option for configuring KDialog
type KDialogOption func(*KDialog)

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner command.Runner) KDialogOption {
	return func(k *KDialog) {
		k.runner = runner
	}
}

// NewKDialog creates a kdialog-based save picker
func NewKDialog(opts ...KDialogOption) *KDialog {
	k := &KDialog{tool: "kdialog", runner: &command.ExecRunner{}}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Available reports whether kdialog is on PATH
func (k *KDialog) Available() bool {
	_, ok := command.LookPath(k.tool)
	return ok
}

// FilterFor returns the kdialog file filter for an extension
func FilterFor(extension string) string {
	return fmt.Sprintf("Video files (*%s)", extension)
}

// PickSavePath implements claim.SavePicker
// A non-zero exit or empty answer means the user cancelled
func (k *KDialog) PickSavePath(ctx context.Context, suggested, extension string) (string, error) {
	stdout, _, err := k.runner.Output(ctx, k.tool, "--getsavefilename", suggested, FilterFor(extension))
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("kdialog not installed: %w", err)
		}
		return "", claim.ErrUserCancelled
	}

	path := strings.TrimSpace(string(stdout))
	if path == "" {
		return "", claim.ErrUserCancelled
	}
	return path, nil
}

// Ensure KDialog implements claim.SavePicker
var _ claim.SavePicker = (*KDialog)(nil)
