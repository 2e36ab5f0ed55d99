package gallery

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"clipfit/domain/gallery"
	"clipfit/domain/video"
)

// DefaultThumbnailTimeout bounds each thumbnail extraction
const DefaultThumbnailTimeout = 10 * time.Second

// Service lists videos in a directory with cached thumbnails
type Service struct {
	scanner     gallery.Scanner
	thumbnailer gallery.Thumbnailer
	checker     video.FileChecker
	cacheDir    string
	timeout     time.Duration
	logger      zerolog.Logger
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithThumbnailTimeout sets the per-thumbnail bound
func WithThumbnailTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a gallery service caching thumbnails under cacheDir
func NewService(scanner gallery.Scanner, thumbnailer gallery.Thumbnailer, checker video.FileChecker, cacheDir string, opts ...Option) *Service {
	s := &Service{
		scanner:     scanner,
		thumbnailer: thumbnailer,
		checker:     checker,
		cacheDir:    cacheDir,
		timeout:     DefaultThumbnailTimeout,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheDir returns the thumbnail cache directory for a temp root
func CacheDir(tempDir string) string {
	return filepath.Join(tempDir, "clipfit_thumbnails")
}

// ThumbnailPath returns the cache file for a video, keyed by the md5 of its absolute path
func (s *Service) ThumbnailPath(videoPath string) string {
	abs, err := filepath.Abs(videoPath)
	if err != nil {
		abs = videoPath
	}
	sum := md5.Sum([]byte(abs))
	return filepath.Join(s.cacheDir, hex.EncodeToString(sum[:])+".jpg")
}

// List scans dir and attaches a thumbnail to each video where one can be produced
func (s *Service) List(ctx context.Context, dir string) ([]gallery.VideoInfo, error) {
	videos, err := s.scanner.Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return videos, nil
	}

	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		s.logger.Warn().Err(err).Str("dir", s.cacheDir).Msg("thumbnail cache unavailable")
		return videos, nil
	}

	for i := range videos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		videos[i].Thumbnail = s.thumbnail(ctx, videos[i].Path)
	}
	return videos, nil
}

// thumbnail returns the cached thumbnail path, or "" for the placeholder
func (s *Service) thumbnail(ctx context.Context, videoPath string) string {
	out := s.ThumbnailPath(videoPath)
	if s.checker.Exists(out) {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.thumbnailer.Thumbnail(ctx, videoPath, out); err != nil {
		s.logger.Debug().Err(err).Str("video", videoPath).Msg("thumbnail failed")
		return ""
	}
	if !s.checker.Exists(out) {
		s.logger.Debug().Str("video", videoPath).Str("output", out).Msg("no thumbnail written")
		return ""
	}
	return out
}
