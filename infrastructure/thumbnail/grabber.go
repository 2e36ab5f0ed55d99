//go:build gocv

package thumbnail

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"clipfit/domain/gallery"
)

// Backend names the frame grabber compiled into this build
const Backend = "gocv"

// Grabber implements gallery.Thumbnailer by decoding one frame with GoCV
// Failures are retried through the fallback thumbnailer when one is set
type Grabber struct {
	fallback gallery.Thumbnailer
}

// New creates a GoCV frame grabber
func New(fallback gallery.Thumbnailer) gallery.Thumbnailer {
	return &Grabber{fallback: fallback}
}

// Thumbnail implements gallery.Thumbnailer
func (g *Grabber) Thumbnail(ctx context.Context, videoPath, outputPath string) error {
	err := grab(videoPath, outputPath)
	if err != nil && g.fallback != nil {
		return g.fallback.Thumbnail(ctx, videoPath, outputPath)
	}
	return err
}

func grab(videoPath, outputPath string) error {
	vc, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", videoPath, err)
	}
	defer vc.Close()

	vc.Set(gocv.VideoCapturePosMsec, OffsetSeconds*1000)

	frame := gocv.NewMat()
	defer frame.Close()
	if ok := vc.Read(&frame); !ok || frame.Empty() {
		return fmt.Errorf("no frame at %ds in %s", OffsetSeconds, videoPath)
	}

	scaled := gocv.NewMat()
	defer scaled.Close()
	height := frame.Rows() * Width / frame.Cols()
	gocv.Resize(frame, &scaled, image.Pt(Width, height), 0, 0, gocv.InterpolationArea)

	if ok := gocv.IMWrite(outputPath, scaled); !ok {
		return fmt.Errorf("failed to write thumbnail %s", outputPath)
	}
	return nil
}
