package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
compression:
  max_size_mb: 8
  preset: slow
encoder:
  timeout: 5m
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Compression.MaxSizeMB != 8 || cfg.Compression.Preset != "slow" {
		t.Errorf("compression = %+v", cfg.Compression)
	}
	if cfg.Encoder.Timeout != 5*time.Minute {
		t.Errorf("timeout = %v, want 5m", cfg.Encoder.Timeout)
	}
	if cfg.Compression.AudioBitrate != "128k" || cfg.Compression.SafetyMargin != 0.05 {
		t.Errorf("defaults not kept: %+v", cfg.Compression)
	}
	if cfg.Clipboard.Timeout != 2*time.Second || cfg.Encoder.FFprobePath != "ffprobe" {
		t.Errorf("defaults not kept: %+v %+v", cfg.Clipboard, cfg.Encoder)
	}
	if cfg.MaxSizeBytes() != 8*1024*1024 {
		t.Errorf("MaxSizeBytes() = %d", cfg.MaxSizeBytes())
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("compression: [oops"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("compression:\n  safety_margin: 1.5\n"), 0644)
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error for margin 1.5")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Compression.MaxSizeMB != 50 {
		t.Errorf("MaxSizeMB = %v, want 50", cfg.Compression.MaxSizeMB)
	}
}

func TestSave_RoundTripsDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Clipboard.Timeout = 3 * time.Second
	cfg.Google.FolderID = "folder-9"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Clipboard.Timeout != 3*time.Second || loaded.Google.FolderID != "folder-9" {
		t.Errorf("loaded = %+v %+v", loaded.Clipboard, loaded.Google)
	}
}

func TestConfigManager_GetSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	m := NewConfigManager(cfg, path)

	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		wantErr error
	}{
		{"string", "compression.preset", "veryfast", "veryfast", nil},
		{"case-insensitive key", "Compression.Max_Size_MB", "25", "25", nil},
		{"duration", "encoder.timeout", "90s", "1m30s", nil},
		{"unknown key", "email.from", "x", "", ErrUnknownKey},
		{"bad number", "compression.safety_margin", "lots", "", ErrInvalidValue},
		{"out of range", "compression.safety_margin", "2", "", ErrInvalidValue},
		{"bad duration", "clipboard.timeout", "soon", "", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := m.Get(tt.key)
			if err != nil || got != tt.want {
				t.Errorf("Get() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}

	if cfg.Compression.SafetyMargin != 0.05 {
		t.Errorf("failed Set mutated config: margin = %v", cfg.Compression.SafetyMargin)
	}

	saved, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if saved.Compression.Preset != "veryfast" || saved.Compression.MaxSizeMB != 25 {
		t.Errorf("saved = %+v", saved.Compression)
	}
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
	if len(NewConfigManager(Default(), "").Entries()) != len(keys) {
		t.Error("Entries() length mismatch")
	}
}
