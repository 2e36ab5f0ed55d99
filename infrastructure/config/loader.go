package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"clipfit/domain/video"
)

// Config represents the complete application configuration
type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Encoder     EncoderConfig     `yaml:"encoder"`
	Compression CompressionConfig `yaml:"compression"`
	Clipboard   ClipboardConfig   `yaml:"clipboard"`
	Google      GoogleConfig      `yaml:"google"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// PathsConfig contains directory paths used by the workflow
type PathsConfig struct {
	TempDirectory    string `yaml:"temp_directory"`
	SaveDirectory    string `yaml:"save_directory"`
	GalleryDirectory string `yaml:"gallery_directory"`
}

// EncoderConfig locates the external encoder and bounds its runtime
type EncoderConfig struct {
	FFmpegPath         string        `yaml:"ffmpeg_path"`
	FFprobePath        string        `yaml:"ffprobe_path"`
	Timeout            time.Duration `yaml:"timeout"`
	ContainerExtension string        `yaml:"container_extension"`
}

// CompressionConfig contains size-fit settings
type CompressionConfig struct {
	MaxSizeMB    float64 `yaml:"max_size_mb"` // 0 disables size fitting
	SafetyMargin float64 `yaml:"safety_margin"`
	VideoCodec   string  `yaml:"video_codec"`
	AudioCodec   string  `yaml:"audio_codec"`
	AudioBitrate string  `yaml:"audio_bitrate"`
	Preset       string  `yaml:"preset"`
}

// ClipboardConfig contains clipboard tool settings
type ClipboardConfig struct {
	Tool    string        `yaml:"tool"`
	Timeout time.Duration `yaml:"timeout"`
}

// GoogleConfig contains Google API settings
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	FolderID        string `yaml:"folder_id"`
}

// LoggingConfig contains log settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with every value populated
func Default() *Config {
	return &Config{
		Encoder: EncoderConfig{
			FFmpegPath:         "ffmpeg",
			FFprobePath:        "ffprobe",
			Timeout:            30 * time.Minute,
			ContainerExtension: ".mp4",
		},
		Compression: CompressionConfig{
			MaxSizeMB:    50,
			SafetyMargin: video.DefaultSafetyMargin,
			VideoCodec:   video.DefaultVideoCodec,
			AudioCodec:   video.DefaultAudioCodec,
			AudioBitrate: video.DefaultAudioBitrate,
			Preset:       video.DefaultPreset,
		},
		Clipboard: ClipboardConfig{
			Tool:    "wl-copy",
			Timeout: 2 * time.Second,
		},
		Google: GoogleConfig{
			CredentialsFile: "credentials.json",
			TokenFile:       "token.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path and overlays it on Default()
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default() when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges that the encoder would otherwise reject late
func (c *Config) Validate() error {
	if c.Compression.MaxSizeMB < 0 {
		return fmt.Errorf("compression.max_size_mb must not be negative, got %v", c.Compression.MaxSizeMB)
	}
	if m := c.Compression.SafetyMargin; m < 0 || m >= 1 {
		return fmt.Errorf("compression.safety_margin must be in [0, 1), got %v", m)
	}
	if c.Encoder.Timeout < 0 || c.Clipboard.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// CompressionSettings returns the encoder settings for size fitting
func (c *Config) CompressionSettings() video.CompressionSettings {
	return video.CompressionSettings{
		SafetyMargin: c.Compression.SafetyMargin,
		VideoCodec:   c.Compression.VideoCodec,
		AudioCodec:   c.Compression.AudioCodec,
		AudioBitrate: c.Compression.AudioBitrate,
		Preset:       c.Compression.Preset,
	}
}

// MaxSizeBytes returns the default ceiling in bytes, 0 when fitting is disabled
func (c *Config) MaxSizeBytes() int64 {
	return video.MegabytesToBytes(c.Compression.MaxSizeMB)
}

// TempDirectory returns the configured temp directory or os.TempDir()
func (c *Config) TempDirectory() string {
	if c.Paths.TempDirectory != "" {
		return c.Paths.TempDirectory
	}
	return os.TempDir()
}

// SaveDirectory returns the configured save directory or the user's home
func (c *Config) SaveDirectory() string {
	if c.Paths.SaveDirectory != "" {
		return c.Paths.SaveDirectory
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// GalleryDirectory returns the configured gallery directory or the working directory
func (c *Config) GalleryDirectory() string {
	if c.Paths.GalleryDirectory != "" {
		return c.Paths.GalleryDirectory
	}
	return "."
}
