// internal/models/response.go
package models

// GenerateResponse carries the generated image back to the caller.
type GenerateResponse struct {
	ImageData string `json:"imageData"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
