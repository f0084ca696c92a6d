// internal/handlers/health.go
package handlers

import (
	"net/http"

	"sareestage-backend/internal/models"
	"sareestage-backend/pkg/utils"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := models.HealthResponse{
		Status:  "healthy",
		Message: "SareeStage backend is running",
	}
	utils.SendJSONResponse(w, http.StatusOK, response)
}
