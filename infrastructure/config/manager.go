package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// field binds a dotted key to a Config field
type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(p func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error { *p(c) = v; return nil },
	}
}

func floatField(p func(*Config) *float64) field {
	return field{
		get: func(c *Config) string { return strconv.FormatFloat(*p(c), 'f', -1, 64) },
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
			}
			*p(c) = f
			return nil
		},
	}
}

func durationField(p func(*Config) *time.Duration) field {
	return field{
		get: func(c *Config) string { return p(c).String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a duration", ErrInvalidValue, v)
			}
			*p(c) = d
			return nil
		},
	}
}

var fields = map[string]field{
	"paths.temp_directory":        stringField(func(c *Config) *string { return &c.Paths.TempDirectory }),
	"paths.save_directory":        stringField(func(c *Config) *string { return &c.Paths.SaveDirectory }),
	"paths.gallery_directory":     stringField(func(c *Config) *string { return &c.Paths.GalleryDirectory }),
	"encoder.ffmpeg_path":         stringField(func(c *Config) *string { return &c.Encoder.FFmpegPath }),
	"encoder.ffprobe_path":        stringField(func(c *Config) *string { return &c.Encoder.FFprobePath }),
	"encoder.timeout":             durationField(func(c *Config) *time.Duration { return &c.Encoder.Timeout }),
	"encoder.container_extension": stringField(func(c *Config) *string { return &c.Encoder.ContainerExtension }),
	"compression.max_size_mb":     floatField(func(c *Config) *float64 { return &c.Compression.MaxSizeMB }),
	"compression.safety_margin":   floatField(func(c *Config) *float64 { return &c.Compression.SafetyMargin }),
	"compression.video_codec":     stringField(func(c *Config) *string { return &c.Compression.VideoCodec }),
	"compression.audio_codec":     stringField(func(c *Config) *string { return &c.Compression.AudioCodec }),
	"compression.audio_bitrate":   stringField(func(c *Config) *string { return &c.Compression.AudioBitrate }),
	"compression.preset":          stringField(func(c *Config) *string { return &c.Compression.Preset }),
	"clipboard.tool":              stringField(func(c *Config) *string { return &c.Clipboard.Tool }),
	"clipboard.timeout":           durationField(func(c *Config) *time.Duration { return &c.Clipboard.Timeout }),
	"google.credentials_file":     stringField(func(c *Config) *string { return &c.Google.CredentialsFile }),
	"google.token_file":           stringField(func(c *Config) *string { return &c.Google.TokenFile }),
	"google.folder_id":            stringField(func(c *Config) *string { return &c.Google.FolderID }),
	"logging.level":               stringField(func(c *Config) *string { return &c.Logging.Level }),
}

// ConfigManager reads and writes single config entries by dotted key
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Keys returns every settable key in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookup(key string) (field, string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	f, ok := fields[key]
	if !ok {
		return field{}, key, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f, key, nil
}

// Get returns the current value of key
func (m *ConfigManager) Get(key string) (string, error) {
	f, _, err := lookup(key)
	if err != nil {
		return "", err
	}
	return f.get(m.config), nil
}

// Set updates key, validates the result and saves the file
// The in-memory config is left untouched when validation fails
func (m *ConfigManager) Set(key, value string) error {
	f, key, err := lookup(key)
	if err != nil {
		return err
	}

	updated := *m.config
	if err := f.set(&updated, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	*m.config = updated
	return Save(m.config, m.configPath)
}

// Entries returns every key with its current value, sorted by key
func (m *ConfigManager) Entries() [][2]string {
	keys := Keys()
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, fields[k].get(m.config)})
	}
	return out
}
