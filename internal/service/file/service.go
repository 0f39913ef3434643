package file

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// UploadAttendanceProof stores a base64-encoded check-in/out photo and
	// returns its public URL. The payload may carry a data URI prefix.
	UploadAttendanceProof(ctx context.Context, employeeID string, date string, encoded string, proofType string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

const maxProofPhotoBytes = 5 << 20 // 5 MB decoded

// UploadAttendanceProof decodes the payload and stores it under
// attendance/<employee>/<date>-<type>-<uuid>.<ext>.
func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, employeeID string, date string, encoded string, proofType string) (string, error) {
	contentType := "image/jpeg"
	ext := ".jpg"

	// Strip an optional data URI prefix (data:image/png;base64,...)
	if strings.HasPrefix(encoded, "data:") {
		parts := strings.SplitN(encoded, ",", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("invalid data URI payload")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		meta = strings.TrimSuffix(meta, ";base64")
		if meta == "image/png" {
			contentType = "image/png"
			ext = ".png"
		} else if meta != "image/jpeg" && meta != "image/jpg" {
			return "", fmt.Errorf("invalid file type: only jpeg and png allowed")
		}
		encoded = parts[1]
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo payload: %w", err)
	}
	if len(decoded) == 0 {
		return "", fmt.Errorf("photo payload is empty")
	}
	if len(decoded) > maxProofPhotoBytes {
		return "", fmt.Errorf("photo payload exceeds %d bytes", maxProofPhotoBytes)
	}

	// Generate unique filename
	uniqueID := uuid.New().String()
	path := fmt.Sprintf("attendance/%s/%s-%s-%s%s", employeeID, date, proofType, uniqueID, ext)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(decoded), path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance proof: %w", err)
	}

	return s.storage.GetURL(ctx, uploadedPath)
}

// DeleteFile removes a stored file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for a stored file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}
