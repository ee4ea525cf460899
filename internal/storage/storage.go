package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Storage hides where blobs live. Paths are always "folder/filename"
// regardless of backend.
//
//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Storage interface {
	Save(ctx context.Context, folder, filename string, data []byte) (string, error)
	Open(ctx context.Context, storedPath string) (io.ReadCloser, error)
	Remove(ctx context.Context, storedPath string) error
}

// Upload folders, one per content kind.
const (
	FolderDocuments    = "documents"
	FolderVideos       = "videos"
	FolderPhotos       = "photos"
	FolderCertificates = "certificates"
	FolderAttachments  = "attachments"
)

// UniqueName keeps the extension but replaces the rest, uploads never
// collide or leak the original name into the path.
func UniqueName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return uuid.NewString() + ext
}

// ExtAllowed checks the (dot-less, case-insensitive) extension whitelist.
func ExtAllowed(filename string, allowed []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if ext == strings.ToLower(strings.TrimPrefix(a, ".")) {
			return true
		}
	}
	return false
}

// Whitelists per folder, mirroring what the product accepts.
var (
	DocumentExtensions    = []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "odt"}
	VideoExtensions       = []string{"mp4", "webm", "mov", "avi", "mkv"}
	PhotoExtensions       = []string{"jpg", "jpeg", "png", "gif", "webp"}
	CertificateExtensions = []string{"pdf", "jpg", "jpeg", "png"}
)
