package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	apppipeline "clipfit/application/pipeline"
	appvideo "clipfit/application/video"
	"clipfit/domain/claim"
	"clipfit/infrastructure/clipboard"
	"clipfit/infrastructure/config"
	"clipfit/infrastructure/dialog"
	"clipfit/infrastructure/events"
	"clipfit/infrastructure/ffmpeg"
	"clipfit/infrastructure/filesystem"
	"clipfit/infrastructure/logging"
)

// encoderOptions returns the ffmpeg adapter options for cfg
func encoderOptions(cfg *config.Config, component string) []ffmpeg.Option {
	return []ffmpeg.Option{
		ffmpeg.WithFFmpegPath(cfg.Encoder.FFmpegPath),
		ffmpeg.WithFFprobePath(cfg.Encoder.FFprobePath),
		ffmpeg.WithTimeout(cfg.Encoder.Timeout),
		ffmpeg.WithLogger(logging.WithComponent(component)),
	}
}

// newSizeFitService builds the production size-fit service
func newSizeFitService(cfg *config.Config) *appvideo.SizeFitService {
	fs := filesystem.NewChecker()
	return appvideo.NewSizeFitService(
		ffmpeg.NewProber(encoderOptions(cfg, "ffprobe")...),
		ffmpeg.NewCompressor(encoderOptions(cfg, "compress")...),
		fs,
		filesystem.NewTempNamer(cfg.TempDirectory()),
		appvideo.WithSettings(cfg.CompressionSettings()),
		appvideo.WithSizeFitLogger(logging.WithComponent("sizefit")),
	)
}

// newPipeline builds the production orchestrator and its status bus
// uploader may be nil when Drive sharing is not requested
func newPipeline(cfg *config.Config, uploader claim.Uploader) (*apppipeline.Service, *events.Bus) {
	fs := filesystem.NewChecker()
	namer := filesystem.NewTempNamer(cfg.TempDirectory())
	bus := events.New()

	trim := appvideo.NewTrimService(
		ffmpeg.NewTrimmer(encoderOptions(cfg, "trim")...),
		fs, fs, namer,
		appvideo.WithExtension(cfg.Encoder.ContainerExtension),
		appvideo.WithTrimLogger(logging.WithComponent("trim")),
	)

	deps := apppipeline.Dependencies{
		Trimmer:    trim,
		SizeFitter: newSizeFitService(cfg),
		Prober:     ffmpeg.NewProber(encoderOptions(cfg, "ffprobe")...),
		Checker:    fs,
		Bus:        bus,
		Clipboard: clipboard.New(
			clipboard.WithTool(cfg.Clipboard.Tool),
			clipboard.WithTimeout(cfg.Clipboard.Timeout),
			clipboard.WithLogger(logging.WithComponent("clipboard")),
		),
		Picker:   dialog.NewSavePicker(),
		Copier:   filesystem.NewCopier(),
		Uploader: uploader,
	}

	svc := apppipeline.NewService(deps,
		apppipeline.WithMaxSizeBytes(cfg.MaxSizeBytes()),
		apppipeline.WithSaveDirectory(cfg.SaveDirectory()),
		apppipeline.WithLogger(logging.WithComponent("pipeline")),
	)
	return svc, bus
}

// verifyTools checks that every tool supporting VerifyInstalled answers
func verifyTools(ctx context.Context, tools ...any) error {
	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for _, tool := range tools {
		if v, ok := tool.(interface{ VerifyInstalled(context.Context) error }); ok {
			if err := v.VerifyInstalled(verifyCtx); err != nil {
				return fmt.Errorf("encoder verification failed: %w", err)
			}
		}
	}
	return nil
}

// encoderTools returns the adapters whose executables must be present
func encoderTools(cfg *config.Config) []any {
	return []any{
		ffmpeg.NewTrimmer(encoderOptions(cfg, "trim")...),
		ffmpeg.NewProber(encoderOptions(cfg, "ffprobe")...),
	}
}

// newOutput wraps w so that status lines and command output do not interleave mid-line
func newOutput(w io.Writer) io.Writer {
	if _, ok := w.(*lockedWriter); ok {
		return w
	}
	return &lockedWriter{w: w}
}
