// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sareestage-backend/internal/models"
	apperrors "sareestage-backend/pkg/errors"
)

// Client calls the relay's generation endpoints on behalf of the try-on
// workflow. It is the workflow's view of the generation collaborator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 3 * time.Minute,
		},
	}
}

// Generate submits a try-on request and returns the generated image as
// base64 data.
func (c *Client) Generate(ctx context.Context, req *models.GenerateRequest) (string, error) {
	return c.post(ctx, "/api/generate", req)
}

// Edit submits a free-form image edit.
func (c *Client) Edit(ctx context.Context, req *models.EditRequest) (string, error) {
	return c.post(ctx, "/api/edit", req)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (string, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", apperrors.NewTransportError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewTransportError("failed to read response body: " + err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return "", errorFromResponse(resp.StatusCode, body)
	}

	var result models.GenerateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperrors.NewTransportError("unexpected response shape")
	}
	if result.ImageData == "" {
		return "", apperrors.NewTransportError("response contained no image data")
	}
	return result.ImageData, nil
}

// errorFromResponse rebuilds an application error from the relay's {message}
// body, keyed off the HTTP status.
func errorFromResponse(status int, body []byte) error {
	message := ""
	var errResp models.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		message = errResp.Message
	}
	if message == "" {
		message = fmt.Sprintf("generation service returned status %d", status)
	}

	switch status {
	case http.StatusTooManyRequests:
		return apperrors.NewAppError(apperrors.ErrRateLimited, status, message)
	case http.StatusUnprocessableEntity:
		return apperrors.NewAppError(apperrors.ErrSafetyBlocked, status, message)
	default:
		return apperrors.NewAppError(apperrors.ErrTransport, status, message)
	}
}
