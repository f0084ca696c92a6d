// internal/upload/validator.go
package upload

import (
	apperrors "sareestage-backend/pkg/errors"
)

// MaxFileSizeBytes is the upload limit for every user-supplied image.
const MaxFileSizeBytes = 10 * 1024 * 1024 // 10MB

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// UploadedImage is a validated user-supplied image held in memory.
type UploadedImage struct {
	Name     string
	MimeType string
	Size     int64
	Data     []byte
}

// Validate checks a candidate image against the type and size constraints.
// It is a pure function of the file metadata: on error no UploadedImage is
// produced, so a previously accepted image is never partially replaced.
func Validate(name, mimeType string, data []byte) (*UploadedImage, error) {
	if !allowedMimeTypes[mimeType] {
		return nil, apperrors.NewInvalidFileTypeError()
	}
	if int64(len(data)) > MaxFileSizeBytes {
		return nil, apperrors.NewFileTooLargeError()
	}

	return &UploadedImage{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Data:     data,
	}, nil
}
