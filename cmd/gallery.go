package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appgallery "clipfit/application/gallery"
	"clipfit/domain/claim"
	"clipfit/domain/gallery"
	"clipfit/infrastructure/ffmpeg"
	"clipfit/infrastructure/filesystem"
	"clipfit/infrastructure/logging"
	"clipfit/infrastructure/thumbnail"
)

// videoLister lists the videos of a directory
type videoLister interface {
	List(ctx context.Context, dir string) ([]gallery.VideoInfo, error)
}

// trimRunner runs the trim workflow for one set of options
type trimRunner func(opts TrimOptions) error

var (
	galleryDir       string
	galleryMaxSizeMB float64
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Pick a video from a folder and trim it",
	Long: `List the videos in a folder, pick one, enter the range to keep, and continue
into the trim workflow.

Example:
  clipfit gallery --dir ~/Videos/Recordings --max-size 25`,
	RunE: runGallery,
}

func init() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.Flags().StringVar(&galleryDir, "dir", "", "Folder to list (default from config)")
	galleryCmd.Flags().Float64Var(&galleryMaxSizeMB, "max-size", 0, "Size ceiling in MB (default from config)")
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	dir := galleryDir
	if dir == "" {
		dir = cfg.GalleryDirectory()
	}

	fs := filesystem.NewChecker()
	lister := appgallery.NewService(
		filesystem.NewScanner(),
		thumbnail.New(ffmpeg.NewThumbnailExtractor(encoderOptions(cfg, "thumbnail")...)),
		fs,
		appgallery.CacheDir(cfg.TempDirectory()),
		appgallery.WithLogger(logging.WithComponent("gallery")),
	)

	ctx := cmd.Context()
	trim := func(opts TrimOptions) error {
		if err := verifyTools(ctx, encoderTools(cfg)...); err != nil {
			return err
		}
		var uploader claim.Uploader
		if opts.Claim == ClaimShare {
			u, err := newDriveUploader(ctx, cfg, os.Stdout)
			if err != nil {
				return err
			}
			uploader = u
		}
		svc, bus := newPipeline(cfg, uploader)
		return RunTrimWithDependencies(ctx, svc, bus, opts, os.Stdout)
	}

	return RunGalleryWithDependencies(ctx, lister, DefaultPrompter, dir, galleryMaxSizeMB, cfg.Google.FolderID != "", trim, os.Stdout)
}

// claimChoices returns the labels and modes offered after a trim
func claimChoices(shareEnabled bool) ([]string, []ClaimMode) {
	labels := []string{"Keep in temp folder", "Save as...", "Copy to clipboard"}
	modes := []ClaimMode{ClaimNone, ClaimSave, ClaimClipboard}
	if shareEnabled {
		labels = append(labels, "Share through Google Drive")
		modes = append(modes, ClaimShare)
	}
	return labels, modes
}

// RunGalleryWithDependencies runs the gallery command with injected dependencies (for testing)
func RunGalleryWithDependencies(ctx context.Context, lister videoLister, prompter Prompter, dir string, maxSizeMB float64, shareEnabled bool, trim trimRunner, output io.Writer) error {
	videos, err := lister.List(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(videos) == 0 {
		fmt.Fprintf(output, "No videos found in %s\n", dir)
		return nil
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tSIZE\tMODIFIED\tTHUMBNAIL")
	names := make([]string, len(videos))
	for i, v := range videos {
		thumb := v.Thumbnail
		if thumb == "" {
			thumb = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, v.Name, v.FileSizeFormatted(), v.ModTime.Format("2006-01-02 15:04"), dimStyle.Render(thumb))
		names[i] = fmt.Sprintf("%s (%s)", v.Name, v.FileSizeFormatted())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	idx, err := prompter.Select("Which video?", names)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if idx < 0 || idx >= len(videos) {
		return fmt.Errorf("invalid selection %d", idx)
	}

	start, err := prompter.Input("Start time?", "00:00:00")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	end, err := prompter.Input("End time?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if end == "" {
		return &ValidationError{Message: "end time is required", Suggestion: "00:01:30"}
	}

	labels, modes := claimChoices(shareEnabled)
	choice, err := prompter.Select("When it's ready?", labels)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if choice < 0 || choice >= len(modes) {
		return fmt.Errorf("invalid selection %d", choice)
	}

	fmt.Fprintln(output)
	return trim(TrimOptions{
		SourcePath: videos[idx].Path,
		StartTime:  start,
		EndTime:    end,
		MaxSizeMB:  maxSizeMB,
		Claim:      modes[choice],
	})
}
