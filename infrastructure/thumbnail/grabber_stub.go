//go:build !gocv

package thumbnail

import "clipfit/domain/gallery"

// Backend names the frame grabber compiled into this build
const Backend = "ffmpeg"

// New returns the fallback unchanged (build with -tags=gocv for the GoCV grabber)
func New(fallback gallery.Thumbnailer) gallery.Thumbnailer {
	return fallback
}
