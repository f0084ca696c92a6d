// internal/relay/relay.go
//
// The edge relay is a stateless forwarder between the browser and the
// generation backend. It owns the cross-origin policy and shields the
// backend address; it never interprets payloads.
package relay

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sareestage-backend/internal/models"
	"sareestage-backend/pkg/utils"
)

type Handler struct {
	backendURL string
	httpClient *http.Client
	log        *zap.Logger
}

func NewHandler(backendURL string, log *zap.Logger) *Handler {
	return &Handler{
		backendURL: backendURL,
		httpClient: &http.Client{
			Timeout: 3 * time.Minute,
		},
		log: log,
	}
}

// Forward returns a handler that relays the POST body to the backend path
// and passes the upstream status code and body through verbatim.
func (h *Handler) Forward(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Missing configuration is reported before any network call.
		if h.backendURL == "" {
			utils.SendJSONResponse(w, http.StatusInternalServerError, models.ErrorResponse{
				Message: "BACKEND_URL not set",
			})
			return
		}

		req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.backendURL+path, r.Body)
		if err != nil {
			utils.SendJSONResponse(w, http.StatusInternalServerError, models.ErrorResponse{
				Message: "failed to build upstream request",
			})
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := h.httpClient.Do(req)
		if err != nil {
			h.log.Error("Relay upstream call failed", zap.String("path", path), zap.Error(err))
			utils.SendJSONResponse(w, http.StatusBadGateway, models.ErrorResponse{
				Message: err.Error(),
			})
			return
		}
		defer resp.Body.Close()

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/json"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(resp.StatusCode)

		if _, err := io.Copy(w, resp.Body); err != nil {
			h.log.Error("Relay response copy failed", zap.String("path", path), zap.Error(err))
		}
	}
}
