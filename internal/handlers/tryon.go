// internal/handlers/tryon.go
package handlers

import (
	"net/http"

	"sareestage-backend/internal/models"
	"sareestage-backend/internal/services"
	"sareestage-backend/pkg/utils"
)

type TryOnHandler struct {
	tryOnService services.TryOnService
}

func NewTryOnHandler(tryOnService services.TryOnService) *TryOnHandler {
	return &TryOnHandler{
		tryOnService: tryOnService,
	}
}

// Generate handles POST /api/generate.
func (h *TryOnHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	imageData, err := h.tryOnService.Generate(r.Context(), &req)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.GenerateResponse{ImageData: imageData})
}

// Edit handles POST /api/edit.
func (h *TryOnHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req models.EditRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	imageData, err := h.tryOnService.Edit(r.Context(), &req)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.GenerateResponse{ImageData: imageData})
}
