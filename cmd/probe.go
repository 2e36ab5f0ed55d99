package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"clipfit/domain/gallery"
	"clipfit/domain/video"
	"clipfit/infrastructure/ffmpeg"
	"clipfit/infrastructure/filesystem"
)

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Print a video's duration and size",
	Args:  cobra.ExactArgs(1),
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	prober := ffmpeg.NewProber(encoderOptions(cfg, "ffprobe")...)
	return RunProbeWithDependencies(cmd.Context(), prober, filesystem.NewChecker(), args[0], os.Stdout)
}

// RunProbeWithDependencies runs the probe command with injected dependencies (for testing)
func RunProbeWithDependencies(ctx context.Context, prober video.DurationProber, sizer video.FileSizer, path string, output io.Writer) error {
	size, err := sizer.Size(path)
	if err != nil {
		return fmt.Errorf("%w: %s", video.ErrSourceNotFound, path)
	}

	seconds, err := prober.ProbeDuration(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "File:     %s\n", path)
	fmt.Fprintf(output, "Duration: %s (%ss)\n", video.FromSeconds(seconds), video.FormatSeconds(seconds))
	fmt.Fprintf(output, "Size:     %s\n", gallery.FormatSize(size))
	return nil
}
