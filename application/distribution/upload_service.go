package distribution

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"clipfit/domain/claim"
	"clipfit/domain/distribution"
)

// UploadService shares finished clips through Google Drive
type UploadService struct {
	driveClient distribution.DriveClient
	folderID    string
	output      io.Writer
}

// NewUploadService creates a new upload service
func NewUploadService(client distribution.DriveClient, folderID string, output io.Writer) *UploadService {
	if output == nil {
		output = io.Discard
	}
	return &UploadService{
		driveClient: client,
		folderID:    folderID,
		output:      output,
	}
}

// Upload uploads filePath as fileName, replacing a same-named file, and makes it link-readable
// An empty fileName keeps the local base name
func (s *UploadService) Upload(ctx context.Context, filePath, fileName string) (*distribution.UploadResult, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	if fileName == "" {
		fileName = filepath.Base(filePath)
	}

	existing, err := s.driveClient.FindFileByName(ctx, s.folderID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing file: %w", err)
	}
	if existing != nil {
		fmt.Fprintf(s.output, "Replacing existing %s (%.1f MB)\n", existing.Name, float64(existing.Size)/1024/1024)
		if err := s.driveClient.DeletePermanently(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to delete existing file %s: %w", existing.Name, err)
		}
	}

	req := distribution.UploadRequest{
		LocalPath: filePath,
		FileName:  fileName,
		FolderID:  s.folderID,
		MimeType:  distribution.MimeTypeFor(fileName),
	}

	result, err := s.driveClient.UploadAndShare(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload and share %s: %w", fileName, err)
	}

	return result, nil
}

// Share implements claim.Uploader
func (s *UploadService) Share(ctx context.Context, path, name string) (string, error) {
	result, err := s.Upload(ctx, path, name)
	if err != nil {
		return "", err
	}
	return result.ShareableURL, nil
}

// Ensure UploadService implements claim.Uploader
var _ claim.Uploader = (*UploadService)(nil)
