package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sareestage-backend/internal/models"
	"sareestage-backend/internal/services"
	apperrors "sareestage-backend/pkg/errors"
)

// fakeTryOnService returns a fixed outcome.
type fakeTryOnService struct {
	imageData string
	err       error
}

func (f *fakeTryOnService) Generate(ctx context.Context, req *models.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, err.Error())
	}
	return f.imageData, f.err
}

func (f *fakeTryOnService) Edit(ctx context.Context, req *models.EditRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, err.Error())
	}
	return f.imageData, f.err
}

var _ services.TryOnService = (*fakeTryOnService)(nil)

func validGenerateBody() string {
	return `{
		"modelImage": {"mimeType": "image/jpeg", "data": "bW9kZWw="},
		"spec": {
			"body": {"image": {"mimeType": "image/png", "data": "Ym9keQ=="}, "text": ""},
			"pallu": {"image": {"mimeType": "image/png", "data": "cGFsbHU="}, "text": ""},
			"blouse": {"type": "running", "description": ""}
		}
	}`
}

func TestGenerateSuccess(t *testing.T) {
	h := NewTryOnHandler(&fakeTryOnService{imageData: "cmVzdWx0"})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(validGenerateBody()))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "cmVzdWx0", resp.ImageData)
}

func TestGenerateMissingFields(t *testing.T) {
	h := NewTryOnHandler(&fakeTryOnService{imageData: "unused"})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"tweakPrompt":"x"}`))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Message, "missing modelImage or spec")
}

func TestGenerateMalformedJSON(t *testing.T) {
	h := NewTryOnHandler(&fakeTryOnService{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateProviderErrorShape(t *testing.T) {
	h := NewTryOnHandler(&fakeTryOnService{err: apperrors.NewRateLimitedError()})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(validGenerateBody()))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// The client sees only the {message} shape, never a provider error body.
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.Contains(t, resp["message"], "high traffic")
}

func TestEditMissingPrompt(t *testing.T) {
	h := NewTryOnHandler(&fakeTryOnService{})

	req := httptest.NewRequest(http.MethodPost, "/api/edit",
		strings.NewReader(`{"image": {"mimeType": "image/png", "data": "aW1n"}}`))
	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditSuccess(t *testing.T) {
	h := NewTryOnHandler(&fakeTryOnService{imageData: "ZWRpdGVk"})

	req := httptest.NewRequest(http.MethodPost, "/api/edit",
		strings.NewReader(`{"image": {"mimeType": "image/png", "data": "aW1n"}, "prompt": "brighter"}`))
	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
