package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vidtube/internal/config"
	"vidtube/internal/dbmongo"
)

// UploadResult is what callers persist: the reference URL plus metadata.
// The bytes themselves live only in the media store.
type UploadResult struct {
	FileID   string `json:"file_id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// Uploader is the media-host facing side of the upload pipeline. Services
// depend on this interface so tests can swap the store out.
type Uploader interface {
	SaveUpload(ctx context.Context, file multipart.File, header *multipart.FileHeader, uploaderID uint64) (*UploadResult, error)
	Remove(ctx context.Context, fileURL string) error
}

type Service struct {
	cfg     config.MediaConfig
	storage *dbmongo.MediaStorage
	logger  *zap.Logger
}

func NewService(cfg *config.Config, storage *dbmongo.MediaStorage, logger *zap.Logger) *Service {
	return &Service{cfg: cfg.Media, storage: storage, logger: logger}
}

// SaveUpload stages the multipart part to a local temp file, pushes it to
// the media store, and removes the staging copy on success and on every
// failure path.
func (s *Service) SaveUpload(ctx context.Context, file multipart.File, header *multipart.FileHeader, uploaderID uint64) (*UploadResult, error) {
	stagingPath := filepath.Join(s.cfg.StagingDir, uuid.NewString()+filepath.Ext(header.Filename))

	staged, err := os.Create(stagingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create staging file: %w", err)
	}
	// The staging copy must not outlive the request, even when the
	// upstream push fails.
	defer func() {
		if removeErr := os.Remove(stagingPath); removeErr != nil {
			s.logger.Warn("failed to remove staging file",
				zap.String("path", stagingPath), zap.Error(removeErr))
		}
	}()

	if _, err := io.Copy(staged, file); err != nil {
		staged.Close()
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if err := staged.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush staging file: %w", err)
	}

	reader, err := os.Open(stagingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen staging file: %w", err)
	}
	defer reader.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	stored, err := s.storage.UploadFile(ctx, header.Filename, mimeType, uploaderID, reader)
	if err != nil {
		return nil, fmt.Errorf("media store upload failed: %w", err)
	}

	return &UploadResult{
		FileID:   stored.ID,
		URL:      s.FileURL(stored.ID),
		Filename: stored.Filename,
		Size:     stored.Size,
		MimeType: stored.MimeType,
	}, nil
}

// Remove deletes a stored blob given its persisted reference URL. Failures
// are logged, not propagated: a dangling blob must not fail the mutation
// that replaced it.
func (s *Service) Remove(ctx context.Context, fileURL string) error {
	fileID := ExtractFileID(fileURL)
	if fileID == "" {
		return nil
	}

	if err := s.storage.DeleteFile(ctx, fileID); err != nil {
		s.logger.Warn("media store delete failed",
			zap.String("file_id", fileID), zap.Error(err))
	}
	return nil
}

// FileURL builds the public reference URL for a stored file.
func (s *Service) FileURL(fileID string) string {
	return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + fileID
}

// ExtractFileID pulls the file id back out of a persisted reference URL.
func ExtractFileID(fileURL string) string {
	if fileURL == "" {
		return ""
	}
	parts := strings.Split(strings.TrimSuffix(fileURL, "/"), "/")
	return parts[len(parts)-1]
}
