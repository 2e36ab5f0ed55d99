package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"clipfit/infrastructure/config"
)

func TestRunConfigShow(t *testing.T) {
	var out bytes.Buffer
	if err := RunConfigShowWithDependencies(config.Default(), "unused.yaml", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{"KEY", "compression.max_size_mb", "50", "encoder.timeout", "30m0s", "google.folder_id"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunConfigGet(t *testing.T) {
	var out bytes.Buffer
	if err := RunConfigGetWithDependencies(config.Default(), "unused.yaml", "compression.preset", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "medium" {
		t.Errorf("got %q, want medium", got)
	}

	err := RunConfigGetWithDependencies(config.Default(), "unused.yaml", "compression.nope", &out)
	if !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("err = %v, want ErrUnknownKey", err)
	}
}

func TestRunConfigSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")
	cfg := config.Default()
	var out bytes.Buffer

	if err := RunConfigSetWithDependencies(cfg, path, "compression.max_size_mb", "25", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Set compression.max_size_mb = 25") {
		t.Errorf("unexpected output: %q", out.String())
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Compression.MaxSizeMB != 25 {
		t.Errorf("saved max_size_mb = %v, want 25", loaded.Compression.MaxSizeMB)
	}
}

func TestRunConfigSet_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()

	err := RunConfigSetWithDependencies(cfg, path, "compression.safety_margin", "1.5", &bytes.Buffer{})
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
	if cfg.Compression.SafetyMargin != config.Default().Compression.SafetyMargin {
		t.Error("invalid value must not change the in-memory config")
	}
}
