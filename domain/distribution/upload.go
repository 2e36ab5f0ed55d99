package distribution

import (
	"path/filepath"
	"strings"
)

// UploadRequest contains the parameters needed to upload a file to Google Drive
type UploadRequest struct {
	LocalPath string // Full path to the local file
	FileName  string // Target filename in Google Drive
	FolderID  string // Target folder ID in Google Drive
	MimeType  string // MIME type of the file
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	FileID       string // Google Drive file ID
	FileName     string // Name of the uploaded file
	ShareableURL string // URL for sharing the file
	Size         int64  // Size of the uploaded file in bytes
}

// MIME type constants for the containers ffmpeg writes
const (
	MimeTypeMP4       = "video/mp4"
	MimeTypeMatroska  = "video/x-matroska"
	MimeTypeQuickTime = "video/quicktime"
	MimeTypeWebM      = "video/webm"
	MimeTypeOctet     = "application/octet-stream"
)

// MimeTypeFor returns the MIME type for a video file based on its extension
func MimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v":
		return MimeTypeMP4
	case ".mkv":
		return MimeTypeMatroska
	case ".mov":
		return MimeTypeQuickTime
	case ".webm":
		return MimeTypeWebM
	}
	return MimeTypeOctet
}
