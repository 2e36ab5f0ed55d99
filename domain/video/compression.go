package video

import (
	"fmt"
	"math"
)

// Defaults for bitrate-targeted compression
const (
	DefaultSafetyMargin = 0.05
	DefaultAudioBitrate = "128k"
	DefaultVideoCodec   = "libx264"
	DefaultAudioCodec   = "aac"
	DefaultPreset       = "medium"
	BytesPerMegabyte    = 1024 * 1024
)

// CompressionSettings are the tunable parameters of a re-encode
type CompressionSettings struct {
	SafetyMargin float64 // fraction of the ceiling reserved for container/audio overhead
	VideoCodec   string
	AudioCodec   string
	AudioBitrate string
	Preset       string
}

// DefaultCompressionSettings returns the settings used when nothing is configured
func DefaultCompressionSettings() CompressionSettings {
	return CompressionSettings{
		SafetyMargin: DefaultSafetyMargin,
		VideoCodec:   DefaultVideoCodec,
		AudioCodec:   DefaultAudioCodec,
		AudioBitrate: DefaultAudioBitrate,
		Preset:       DefaultPreset,
	}
}

// withDefaults fills empty fields from DefaultCompressionSettings
func (s CompressionSettings) withDefaults() CompressionSettings {
	d := DefaultCompressionSettings()
	if s.SafetyMargin <= 0 || s.SafetyMargin >= 1 {
		s.SafetyMargin = d.SafetyMargin
	}
	if s.VideoCodec == "" {
		s.VideoCodec = d.VideoCodec
	}
	if s.AudioCodec == "" {
		s.AudioCodec = d.AudioCodec
	}
	if s.AudioBitrate == "" {
		s.AudioBitrate = d.AudioBitrate
	}
	if s.Preset == "" {
		s.Preset = d.Preset
	}
	return s
}

// CompressionPlan is the derived set of encoder parameters for one re-encode
type CompressionPlan struct {
	DurationSeconds float64
	TargetSizeBytes int64
	VideoBitrate    int64 // bits per second
	Settings        CompressionSettings
}

// TargetBitrate computes floor(maxSizeBytes * (1-margin) * 8 / durationSeconds)
func TargetBitrate(maxSizeBytes int64, durationSeconds, margin float64) int64 {
	return int64(math.Floor(float64(maxSizeBytes) * (1 - margin) * 8 / durationSeconds))
}

// NewCompressionPlan derives the video bitrate needed to land under maxSizeBytes
func NewCompressionPlan(durationSeconds float64, maxSizeBytes int64, settings CompressionSettings) (*CompressionPlan, error) {
	if durationSeconds <= 0 || math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) {
		return nil, fmt.Errorf("%w: got %v seconds", ErrDurationUnknown, durationSeconds)
	}
	if maxSizeBytes <= 0 {
		return nil, fmt.Errorf("%w: size ceiling must be positive, got %d bytes", ErrCompressFailure, maxSizeBytes)
	}

	settings = settings.withDefaults()
	bitrate := TargetBitrate(maxSizeBytes, durationSeconds, settings.SafetyMargin)
	if bitrate < 1 {
		return nil, fmt.Errorf("%w: ceiling of %d bytes is too small for %.3fs of video", ErrCompressFailure, maxSizeBytes, durationSeconds)
	}

	return &CompressionPlan{
		DurationSeconds: durationSeconds,
		TargetSizeBytes: maxSizeBytes,
		VideoBitrate:    bitrate,
		Settings:        settings,
	}, nil
}

// MegabytesToBytes converts a size in MB (MiB) to bytes
func MegabytesToBytes(mb float64) int64 {
	return int64(mb * BytesPerMegabyte)
}

// BytesToMegabytes converts bytes to MB (MiB)
func BytesToMegabytes(b int64) float64 {
	return float64(b) / BytesPerMegabyte
}
