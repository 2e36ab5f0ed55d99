package claim

import (
	"context"
	"errors"
)

// Errors returned by claim adapters
var (
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrUserCancelled        = errors.New("cancelled by user")
	ErrDestinationWrite     = errors.New("destination write failed")
)

// Clipboard publishes a file onto the desktop clipboard
// This is a port that can be implemented by different infrastructure adapters
type Clipboard interface {
	// PublishFile places a file URI and the plain path onto the clipboard selections
	PublishFile(ctx context.Context, path string) error
}

// SavePicker asks the user for a destination path
type SavePicker interface {
	// PickSavePath returns the chosen path, or ErrUserCancelled
	PickSavePath(ctx context.Context, suggested, extension string) (string, error)
}

// FileCopier copies a claimed output to its destination
type FileCopier interface {
	Copy(src, dst string) error
}

// Uploader publishes a claimed output to remote storage and returns a shareable URL
type Uploader interface {
	// Share uploads path under name; an empty name keeps the local base name
	Share(ctx context.Context, path, name string) (string, error)
}

// Outcome is the boolean result of a claim plus a human-readable status
type Outcome struct {
	Claimed bool
	Status  string
	Path    string // destination path or URL, when one exists
}
