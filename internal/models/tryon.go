// internal/models/tryon.go
package models

import "errors"

// Blouse types
const (
	BlouseRunning = "running"
	BlouseCustom  = "custom"
)

// ImageData is a base64-encoded image with its declared MIME type, as it
// travels over the wire.
type ImageData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// SareePart is one reference side of the saree (body or pallu): an optional
// image plus free-text attributes.
type SareePart struct {
	Image *ImageData `json:"image,omitempty"`
	Text  string     `json:"text"`
}

type BlouseSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SareeSpecification describes the garment to composite onto the model photo.
type SareeSpecification struct {
	Body   SareePart  `json:"body"`
	Pallu  SareePart  `json:"pallu"`
	Blouse BlouseSpec `json:"blouse"`
}

type GenerateRequest struct {
	ModelImage  *ImageData          `json:"modelImage"`
	Spec        *SareeSpecification `json:"spec"`
	TweakPrompt string              `json:"tweakPrompt,omitempty"`
}

type EditRequest struct {
	Image  *ImageData `json:"image"`
	Prompt string     `json:"prompt"`
}

func (r *GenerateRequest) Validate() error {
	if r.ModelImage == nil || r.Spec == nil {
		return errors.New("missing modelImage or spec in request body")
	}
	return nil
}

func (r *EditRequest) Validate() error {
	if r.Image == nil || r.Prompt == "" {
		return errors.New("missing image or prompt in request body")
	}
	return nil
}
