package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunShare(t *testing.T) {
	uploader := &mockUploader{url: "https://drive.google.com/file/d/abc/view"}
	var out bytes.Buffer

	if err := RunShareWithDependencies(context.Background(), uploader, "/clips/a.mp4", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(uploader.names) != 1 || uploader.names[0] != "" {
		t.Errorf("names = %q, want the local base name to be kept", uploader.names)
	}
	if !strings.Contains(out.String(), "URL: https://drive.google.com/file/d/abc/view") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunShare_Error(t *testing.T) {
	uploader := &mockUploader{err: errors.New("quota exceeded")}

	err := RunShareWithDependencies(context.Background(), uploader, "/clips/a.mp4", &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want upload error", err)
	}
}
