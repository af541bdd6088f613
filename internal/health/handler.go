// Package health exposes the service health-check endpoint.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/imagedrop/service/internal/response"
)

// Pinger is a lightweight connectivity probe into the metadata store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves GET /health.
type Handler struct {
	store       Pinger
	environment string
}

// NewHandler creates a health Handler reporting the given environment name.
func NewHandler(store Pinger, environment string) *Handler {
	return &Handler{store: store, environment: environment}
}

type healthResponse struct {
	Status      string    `json:"status" example:"healthy"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment" example:"production"`
	Error       string    `json:"error,omitempty"`
}

// Check godoc
//
//	@Summary		Health check
//	@Description	Reports service health. Degrades to 503 when the metadata store is unreachable.
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	healthResponse
//	@Failure		503	{object}	healthResponse
//	@Router			/health [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:      "unhealthy",
			Timestamp:   time.Now().UTC(),
			Environment: h.environment,
			Error:       "metadata store unreachable",
		})
		return
	}

	response.JSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.environment,
	})
}
