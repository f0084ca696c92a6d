// internal/gemini/client.go
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sareestage-backend/internal/config"
	"sareestage-backend/internal/prompt"
	apperrors "sareestage-backend/pkg/errors"
)

// Client talks to the Gemini generateContent REST API for image generation.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg config.GeminiConfig, log *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// wire types for the generateContent surface

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type wirePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []wirePart `json:"parts"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []wirePart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends the assembled parts to the model and returns the first
// inline image from the response as base64 data. Provider failures are
// classified into the application error taxonomy; the raw provider error
// shape never leaves this package.
func (c *Client) Generate(ctx context.Context, parts []prompt.Part) (string, error) {
	reqBody := generateContentRequest{
		Contents:         []content{{Parts: toWireParts(parts)}},
		GenerationConfig: generationConfig{ResponseModalities: []string{"IMAGE"}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", apperrors.NewTransportError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewTransportError("failed to read provider response: " + err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyHTTPError(resp.StatusCode, body)
	}

	var apiResponse generateContentResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrInternalServer, 500,
			"The model returned an unreadable response. Please try again.")
	}

	// Check for image data first
	for _, candidate := range apiResponse.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return part.InlineData.Data, nil
			}
		}
	}

	// If no image, check why the candidate finished
	if len(apiResponse.Candidates) > 0 && apiResponse.Candidates[0].FinishReason == "SAFETY" {
		c.log.Warn("Generation stopped due to safety policies")
		return "", apperrors.NewSafetyBlockedError()
	}

	c.log.Error("Provider did not return an image", zap.ByteString("body", truncate(body)))
	return "", apperrors.NewAppError(apperrors.ErrInternalServer, 500,
		"The model did not return an image. This could be due to the prompt, safety filters, or an inability to process the request. Please try different images or tweak your instructions.")
}

func (c *Client) classifyHTTPError(status int, body []byte) error {
	c.log.Error("Provider request failed",
		zap.Int("status", status),
		zap.ByteString("body", truncate(body)))

	// Surface the provider's safety verdict distinctly even when it arrives
	// as an HTTP-level error.
	if bytes.Contains(body, []byte("SAFETY")) {
		return apperrors.NewSafetyBlockedError()
	}

	switch {
	case status == http.StatusTooManyRequests:
		return apperrors.NewRateLimitedError()
	case status == http.StatusBadRequest:
		return apperrors.NewAppError(apperrors.ErrBadRequest, 400,
			"There was a problem with the request, possibly due to an issue with an uploaded image. Please try again with a different image.")
	case status >= 500:
		return apperrors.NewAppError(apperrors.ErrInternalServer, 502,
			"A server-side error occurred. We've been notified and are looking into it. Please try again later.")
	default:
		return apperrors.NewTransportError(fmt.Sprintf("provider returned status %d", status))
	}
}

func toWireParts(parts []prompt.Part) []wirePart {
	out := make([]wirePart, 0, len(parts))
	for _, p := range parts {
		if p.Inline != nil {
			out = append(out, wirePart{InlineData: &inlineData{
				MimeType: p.Inline.MimeType,
				Data:     p.Inline.Data,
			}})
			continue
		}
		out = append(out, wirePart{Text: p.Text})
	}
	return out
}

func truncate(body []byte) []byte {
	const limit = 512
	if len(body) <= limit {
		return body
	}
	return body[:limit]
}
