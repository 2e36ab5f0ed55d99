package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipfit/infrastructure/config"
)

func TestRunSetup_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.yaml")
	var out bytes.Buffer

	if err := RunSetupWithPrompter(&mockPrompter{}, path, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	def := config.Default()
	if cfg.Encoder.FFmpegPath != def.Encoder.FFmpegPath || cfg.Compression.MaxSizeMB != def.Compression.MaxSizeMB {
		t.Errorf("empty answers should keep defaults, got %+v", cfg)
	}
	if cfg.Google.FolderID != "" {
		t.Errorf("FolderID = %q, want empty when Drive is skipped", cfg.Google.FolderID)
	}
	if !strings.Contains(out.String(), "Configuration saved to "+path) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunSetup_CustomValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	prompter := &mockPrompter{
		inputs: []string{
			"/usr/local/bin/ffmpeg", "/usr/local/bin/ffprobe", // encoder
			"8", "veryfast", // compression
			"/home/u/Clips", "/home/u/Videos", "", // paths and clipboard
			"", "folder123", // google
		},
		confirms: []bool{true},
	}

	if err := RunSetupWithPrompter(prompter, path, &bytes.Buffer{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if cfg.Encoder.FFmpegPath != "/usr/local/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.Encoder.FFmpegPath)
	}
	if cfg.Compression.MaxSizeMB != 8 || cfg.Compression.Preset != "veryfast" {
		t.Errorf("compression = %+v", cfg.Compression)
	}
	if cfg.Paths.SaveDirectory != "/home/u/Clips" || cfg.Paths.GalleryDirectory != "/home/u/Videos" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
	if cfg.Clipboard.Tool != "wl-copy" {
		t.Errorf("Clipboard.Tool = %q, want default", cfg.Clipboard.Tool)
	}
	if cfg.Google.FolderID != "folder123" || cfg.Google.CredentialsFile != "credentials.json" {
		t.Errorf("google = %+v", cfg.Google)
	}
}

func TestRunSetup_InvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	prompter := &mockPrompter{inputs: []string{"", "", "lots"}}

	err := RunSetupWithPrompter(prompter, path, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "size limit") {
		t.Fatalf("err = %v, want size limit error", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("config must not be written after a failed prompt")
	}
}

func TestRunSetup_KeepsExistingWhenDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer

	if err := RunSetupWithPrompter(&mockPrompter{confirms: []bool{false}}, path, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "logging:\n  level: debug\n" {
		t.Errorf("existing config was modified: %q", data)
	}
	if !strings.Contains(out.String(), "Setup cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
