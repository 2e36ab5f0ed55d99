package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	apppipeline "clipfit/application/pipeline"
	"clipfit/domain/claim"
	"clipfit/domain/gallery"
	"clipfit/domain/video"
)

// ClaimMode selects what happens to a finished clip
type ClaimMode string

// Claim modes
const (
	ClaimNone      ClaimMode = ""
	ClaimOutput    ClaimMode = "output"
	ClaimSave      ClaimMode = "save"
	ClaimClipboard ClaimMode = "clipboard"
	ClaimShare     ClaimMode = "share"
)

// TrimOptions are the parameters of one trim run
type TrimOptions struct {
	SourcePath string
	StartTime  string
	EndTime    string
	MaxSizeMB  float64 // 0 keeps the configured ceiling, negative disables fitting
	Claim      ClaimMode
	OutputPath string // destination for ClaimOutput
}

var (
	trimOpts      TrimOptions
	trimSave      bool
	trimClipboard bool
	trimShare     bool
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Trim a video and fit it under a size limit",
	Long: `Cut the range [start, end) out of a video without re-encoding. When the
result is larger than the size ceiling it is re-encoded at the bitrate that
lands under the ceiling; if that fails, the uncompressed trim is kept.

Timestamps accept HH:MM:SS[.mmm], MM:SS, plain seconds (12.5) or milliseconds (1500ms).

Examples:
  clipfit trim --source match.mkv --start 00:01:10 --end 00:01:40
  clipfit trim --source match.mkv --start 70 --end 100 --max-size 8 --clipboard
  clipfit trim --source match.mkv --start 01:10 --end 01:40 --output clip.mp4`,
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringVar(&trimOpts.SourcePath, "source", "", "Path to source video file (required)")
	trimCmd.Flags().StringVar(&trimOpts.StartTime, "start", "", "Start timestamp (required)")
	trimCmd.Flags().StringVar(&trimOpts.EndTime, "end", "", "End timestamp (required)")
	trimCmd.Flags().Float64Var(&trimOpts.MaxSizeMB, "max-size", 0, "Size ceiling in MB (default from config, -1 disables)")
	trimCmd.Flags().StringVar(&trimOpts.OutputPath, "output", "", "Copy the result to this path")
	trimCmd.Flags().BoolVar(&trimSave, "save", false, "Choose where to save the result in a dialog")
	trimCmd.Flags().BoolVar(&trimClipboard, "clipboard", false, "Copy the result to the clipboard")
	trimCmd.Flags().BoolVar(&trimShare, "share", false, "Upload the result to Google Drive")
	trimCmd.MarkFlagRequired("source")
	trimCmd.MarkFlagRequired("start")
	trimCmd.MarkFlagRequired("end")
	trimCmd.MarkFlagsMutuallyExclusive("output", "save", "clipboard", "share")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	opts := trimOpts
	switch {
	case opts.OutputPath != "":
		opts.Claim = ClaimOutput
	case trimSave:
		opts.Claim = ClaimSave
	case trimClipboard:
		opts.Claim = ClaimClipboard
	case trimShare:
		opts.Claim = ClaimShare
	}

	if err := verifyTools(cmd.Context(), encoderTools(cfg)...); err != nil {
		return err
	}

	var uploader claim.Uploader
	if opts.Claim == ClaimShare {
		if uploader, err = newDriveUploader(cmd.Context(), cfg, os.Stdout); err != nil {
			return err
		}
	}

	svc, bus := newPipeline(cfg, uploader)
	return RunTrimWithDependencies(cmd.Context(), svc, bus, opts, os.Stdout)
}

// RunTrimWithDependencies runs the trim workflow on an orchestrator (for testing)
func RunTrimWithDependencies(ctx context.Context, svc *apppipeline.Service, bus subscriber, opts TrimOptions, output io.Writer) error {
	output = newOutput(output)
	printer := printStatus(bus, output)
	defer printer.Close()

	start, err := video.ParseTimestamp(opts.StartTime)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid start time: %v", err), Suggestion: "--start 00:01:10"}
	}
	end, err := video.ParseTimestamp(opts.EndTime)
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("invalid end time: %v", err), Suggestion: "--end 00:01:40"}
	}

	durationMs, err := svc.LoadSource(ctx, opts.SourcePath)
	if err != nil {
		return err
	}
	if end.Millis() > durationMs {
		return &ValidationError{
			Message:    fmt.Sprintf("end time %s is past the end of the video (%s)", end, video.Timestamp(durationMs)),
			Suggestion: fmt.Sprintf("--end %s", video.Timestamp(durationMs)),
		}
	}
	if err := svc.SetRange(start.Millis(), end.Millis()); err != nil {
		return err
	}

	switch {
	case opts.MaxSizeMB < 0:
		err = svc.SetMaxSizeBytes(0)
	case opts.MaxSizeMB > 0:
		err = svc.SetMaxSizeBytes(video.MegabytesToBytes(opts.MaxSizeMB))
	}
	if err != nil {
		return err
	}

	c, err := svc.CreateTrim(ctx)
	printer.waitTerminal(time.Second)
	if err != nil {
		return err
	}

	return finishClaim(ctx, svc, printer, c.Request.Claimable(), opts, output)
}

// finishClaim hands the completed output to the requested destination
func finishClaim(ctx context.Context, svc *apppipeline.Service, printer *statusPrinter, finalPath string, opts TrimOptions, output io.Writer) error {
	var (
		out claim.Outcome
		err error
	)
	switch opts.Claim {
	case ClaimOutput:
		out, err = svc.ClaimToPath(ctx, opts.OutputPath)
	case ClaimSave:
		out, err = svc.ClaimWithPicker(ctx)
	case ClaimClipboard:
		out, err = svc.ClaimToClipboard(ctx)
	case ClaimShare:
		out, err = svc.ClaimToDrive(ctx)
	default:
		size := svc.Snapshot().Request.FinalSize
		fmt.Fprintf(output, "Output: %s (%s)\n", finalPath, gallery.FormatSize(size))
		return nil
	}
	printer.waitTerminal(time.Second)

	if err != nil {
		if errors.Is(err, claim.ErrClipboardUnavailable) {
			fmt.Fprintf(output, "Output left at: %s\n", finalPath)
		}
		return err
	}
	if !out.Claimed {
		fmt.Fprintf(output, "Output left at: %s\n", finalPath)
	}
	return nil
}

// ValidationError contains details about a validation failure with suggestions
type ValidationError struct {
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s\n\nTo fix this, try:\n  %s", e.Message, e.Suggestion)
	}
	return e.Message
}
