// internal/relay/routes.go
package relay

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sareestage-backend/internal/middleware"
	"sareestage-backend/internal/models"
	"sareestage-backend/pkg/utils"
)

// SetupRoutes builds the relay router. OPTIONS preflights are answered with
// 204 by the CORS middleware before routing; any other non-POST method on
// the API paths gets a 405.
func SetupRoutes(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(allowedOrigins, false))

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		utils.SendJSONResponse(w, http.StatusMethodNotAllowed, models.ErrorResponse{
			Message: "Method Not Allowed",
		})
	})

	r.Post("/api/generate", h.Forward("/api/generate"))
	r.Post("/api/edit", h.Forward("/api/edit"))

	return r
}
