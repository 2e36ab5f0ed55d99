package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clipfit/domain/claim"
	"clipfit/domain/gallery"
	"clipfit/domain/video"
	"clipfit/infrastructure/filesystem"
)

// CompressOptions are the parameters of one compress run
type CompressOptions struct {
	InputPath  string
	MaxSizeMB  float64
	OutputPath string
	RequestID  string
}

// sizeFitter fits a file under a byte ceiling
type sizeFitter interface {
	FitToSize(ctx context.Context, inputPath string, maxSizeBytes int64, requestID string) (*video.FitOutcome, error)
}

var compressOpts CompressOptions

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Re-encode a video so it fits under a size limit",
	Long: `Re-encode a video at the bitrate that lands under --max-size. A file that
already fits is left untouched.

Example:
  clipfit compress --input clip.mp4 --max-size 8 --output clip_8mb.mp4`,
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)
	compressCmd.Flags().StringVar(&compressOpts.InputPath, "input", "", "Path to the video to compress (required)")
	compressCmd.Flags().Float64Var(&compressOpts.MaxSizeMB, "max-size", 0, "Size ceiling in MB (required)")
	compressCmd.Flags().StringVar(&compressOpts.OutputPath, "output", "", "Copy the result to this path")
	compressCmd.MarkFlagRequired("input")
	compressCmd.MarkFlagRequired("max-size")
}

func runCompress(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	fitter := newSizeFitService(cfg)
	if err := verifyTools(cmd.Context(), encoderTools(cfg)...); err != nil {
		return err
	}

	opts := compressOpts
	opts.RequestID = uuid.NewString()
	return RunCompressWithDependencies(cmd.Context(), fitter, filesystem.NewCopier(), opts, os.Stdout)
}

// RunCompressWithDependencies runs the compress command with injected dependencies (for testing)
func RunCompressWithDependencies(ctx context.Context, fitter sizeFitter, copier claim.FileCopier, opts CompressOptions, output io.Writer) error {
	if opts.MaxSizeMB <= 0 {
		return &ValidationError{
			Message:    fmt.Sprintf("--max-size must be greater than 0, got %v", opts.MaxSizeMB),
			Suggestion: "--max-size 8",
		}
	}

	fmt.Fprintf(output, "Fitting %s under %.1f MB...\n", opts.InputPath, opts.MaxSizeMB)

	outcome, err := fitter.FitToSize(ctx, opts.InputPath, video.MegabytesToBytes(opts.MaxSizeMB), opts.RequestID)
	if err != nil {
		fmt.Fprintln(output, errorStyle.Render("✗ Compression failed"))
		return err
	}

	if outcome.WasCompressed {
		fmt.Fprintf(output, "%s\n", successStyle.Render("✓ Compressed to "+gallery.FormatSize(outcome.SizeBytes)))
	} else {
		fmt.Fprintf(output, "%s\n", successStyle.Render("✓ Already within limit ("+gallery.FormatSize(outcome.SizeBytes)+")"))
	}

	final := outcome.Path
	if opts.OutputPath != "" {
		if err := copier.Copy(outcome.Path, opts.OutputPath); err != nil {
			return err
		}
		final = opts.OutputPath
	}
	fmt.Fprintf(output, "Output: %s\n", final)
	return nil
}
