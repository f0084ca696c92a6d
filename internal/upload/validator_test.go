package upload

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "sareestage-backend/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int
		wantErr  string
	}{
		{name: "jpeg accepted", mimeType: "image/jpeg", size: 1024},
		{name: "png accepted", mimeType: "image/png", size: 1024},
		{name: "exactly at the limit", mimeType: "image/png", size: MaxFileSizeBytes},
		{name: "one byte over the limit", mimeType: "image/png", size: MaxFileSizeBytes + 1, wantErr: apperrors.ErrFileTooLarge},
		{name: "gif rejected", mimeType: "image/gif", size: 1024, wantErr: apperrors.ErrInvalidFileType},
		{name: "webp rejected", mimeType: "image/webp", size: 1024, wantErr: apperrors.ErrInvalidFileType},
		{name: "empty mime rejected", mimeType: "", size: 1024, wantErr: apperrors.ErrInvalidFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Validate("photo", tt.mimeType, make([]byte, tt.size))
			if tt.wantErr != "" {
				require.Error(t, err)
				require.True(t, apperrors.IsErrorType(err, tt.wantErr),
					"expected %s, got %v", tt.wantErr, err)
				require.Nil(t, img)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.mimeType, img.MimeType)
			require.Equal(t, int64(tt.size), img.Size)
		})
	}
}

func TestValidateTypeCheckedBeforeSize(t *testing.T) {
	// An oversized gif reports the type problem, matching the upload form's
	// accept filter being the first gate.
	_, err := Validate("big.gif", "image/gif", make([]byte, MaxFileSizeBytes+1))
	require.True(t, apperrors.IsErrorType(err, apperrors.ErrInvalidFileType))
}
