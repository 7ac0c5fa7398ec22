package handlers

import (
	"net/http"

	"github.com/vivmac33/marketprism/internal/refdata"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// RefdataHandler handles reference dataset API endpoints
type RefdataHandler struct {
	repo   *refdata.Repository
	logger *logger.Logger
}

// NewRefdataHandler creates a new refdata handler
func NewRefdataHandler(repo *refdata.Repository, log *logger.Logger) *RefdataHandler {
	return &RefdataHandler{
		repo:   repo,
		logger: log,
	}
}

// ListFunds returns the fund reference table, optionally filtered by category
// GET /api/v1/reference/funds?category=
func (h *RefdataHandler) ListFunds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.URL.Query().Get("category")

	funds, err := h.repo.ListFunds(ctx, category)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list funds")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve funds")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(funds),
		"funds": funds,
	})
}

// ListConcepts returns the glossary of investing concepts
// GET /api/v1/reference/concepts
func (h *RefdataHandler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	concepts, err := h.repo.ListConcepts(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list concepts")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve concepts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(concepts),
		"concepts": concepts,
	})
}

// ListLessons returns the ordered curriculum lessons
// GET /api/v1/reference/curriculum
func (h *RefdataHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lessons, err := h.repo.ListLessons(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list lessons")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve lessons")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(lessons),
		"lessons": lessons,
	})
}
