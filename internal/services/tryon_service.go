// internal/services/tryon_service.go
package services

import (
	"context"
	"net/http"

	"sareestage-backend/internal/models"
	"sareestage-backend/internal/prompt"
	apperrors "sareestage-backend/pkg/errors"
)

// ImageGenerator is the outbound boundary to the generation model.
type ImageGenerator interface {
	Generate(ctx context.Context, parts []prompt.Part) (string, error)
}

type TryOnService interface {
	Generate(ctx context.Context, req *models.GenerateRequest) (string, error)
	Edit(ctx context.Context, req *models.EditRequest) (string, error)
}

type tryOnService struct {
	generator ImageGenerator
}

func NewTryOnService(generator ImageGenerator) TryOnService {
	return &tryOnService{
		generator: generator,
	}
}

func (s *tryOnService) Generate(ctx context.Context, req *models.GenerateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, err.Error())
	}

	parts := prompt.BuildTryOn(req.ModelImage, req.Spec, req.TweakPrompt)
	return s.generator.Generate(ctx, parts)
}

func (s *tryOnService) Edit(ctx context.Context, req *models.EditRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, err.Error())
	}

	parts := prompt.BuildEdit(req.Image, req.Prompt)
	return s.generator.Generate(ctx, parts)
}
