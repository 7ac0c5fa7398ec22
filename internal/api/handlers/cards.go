package handlers

import (
	"net/http"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// CardsHandler handles card catalog API endpoints
type CardsHandler struct {
	registry *cards.Registry
	logger   *logger.Logger
}

// NewCardsHandler creates a new cards handler
func NewCardsHandler(registry *cards.Registry, log *logger.Logger) *CardsHandler {
	return &CardsHandler{
		registry: registry,
		logger:   log,
	}
}

// List returns the catalog of registered cards
// GET /api/v1/cards
func (h *CardsHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": h.registry.Count(),
		"cards": h.registry.List(),
	})
}
