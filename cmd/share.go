package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	appdist "clipfit/application/distribution"
	"clipfit/domain/claim"
	"clipfit/infrastructure/config"
	"clipfit/infrastructure/drive"
	"clipfit/infrastructure/logging"
)

var shareInputPath string

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Upload a clip to Google Drive and print a shareable link",
	Long: `Upload a video to the configured Google Drive folder and make it readable
by anyone with the link. A file with the same name in the folder is replaced.

The first run opens a browser for Google sign-in and stores the token in
google.token_file.

Example:
  clipfit share --input trimmed_match.mp4`,
	RunE: runShare,
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.Flags().StringVar(&shareInputPath, "input", "", "Path to the video to share (required)")
	shareCmd.MarkFlagRequired("input")
}

func runShare(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	uploader, err := newDriveUploader(cmd.Context(), cfg, os.Stdout)
	if err != nil {
		return err
	}

	return RunShareWithDependencies(cmd.Context(), uploader, shareInputPath, os.Stdout)
}

// newDriveUploader authenticates with Google Drive and returns the share service
func newDriveUploader(ctx context.Context, cfg *config.Config, output io.Writer) (*appdist.UploadService, error) {
	client, err := drive.NewClientWithOAuth(ctx, drive.OAuthConfig{
		CredentialsFile: cfg.Google.CredentialsFile,
		TokenFile:       cfg.Google.TokenFile,
		Prompt:          output,
	}, drive.WithLogger(logging.WithComponent("drive")))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}
	return appdist.NewUploadService(client, cfg.Google.FolderID, output), nil
}

// RunShareWithDependencies runs the share command with injected dependencies (for testing)
func RunShareWithDependencies(ctx context.Context, uploader claim.Uploader, inputPath string, output io.Writer) error {
	fmt.Fprintf(output, "Uploading %s...\n", inputPath)

	url, err := uploader.Share(ctx, inputPath, "")
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\n", successStyle.Render("✓ Shared"))
	fmt.Fprintf(output, "  URL: %s\n", url)
	return nil
}
