// internal/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sareestage-backend/internal/handlers"
	"sareestage-backend/internal/middleware"
	"sareestage-backend/internal/models"
	"sareestage-backend/pkg/utils"
)

type Handlers struct {
	Health *handlers.HealthHandler
	TryOn  *handlers.TryOnHandler
}

func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger())
	r.Use(middleware.Recoverer())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	// Generation calls dominate request time; give them room.
	r.Use(middleware.Timeout(180 * time.Second))
	r.Use(middleware.CORS(allowedOrigins, false))

	r.MethodNotAllowed(methodNotAllowed)

	// Health check routes
	r.Get("/", h.Health.HealthCheck)
	r.Get("/health", h.Health.HealthCheck)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", h.TryOn.Generate)
		r.Post("/edit", h.TryOn.Edit)
	})

	return r
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(w, http.StatusMethodNotAllowed, models.ErrorResponse{
		Message: "Method Not Allowed",
	})
}
