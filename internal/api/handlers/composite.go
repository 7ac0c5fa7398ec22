package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vivmac33/marketprism/internal/cards"
	"github.com/vivmac33/marketprism/internal/composer"
	"github.com/vivmac33/marketprism/internal/contracts"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// CompositeHandler handles synthesis API endpoints
type CompositeHandler struct {
	composer *composer.Composer
	logger   *logger.Logger
}

// NewCompositeHandler creates a new composite handler
func NewCompositeHandler(cmp *composer.Composer, log *logger.Logger) *CompositeHandler {
	return &CompositeHandler{
		composer: cmp,
		logger:   log,
	}
}

// SynthesizeRequest carries externally computed card outputs for a symbol.
type SynthesizeRequest struct {
	Cards []contracts.CardOutput `json:"cards"`
}

// Synthesize aggregates a submitted card batch into a composite verdict
// POST /api/v1/synthesize/{symbol}
func (h *CompositeHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.composer.SynthesizeBatch(ctx, symbol, req.Cards)
	if err != nil {
		h.logger.WithError(err).Error("Failed to synthesize batch")
		respondError(w, http.StatusInternalServerError, "Failed to synthesize batch")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// EvaluateRequest carries raw symbol data for the built-in card producers.
type EvaluateRequest struct {
	Data cards.SymbolData `json:"data"`
}

// Evaluate runs the built-in card producers and synthesizes the result
// POST /api/v1/evaluate
func (h *CompositeHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Data.Symbol == "" {
		respondError(w, http.StatusBadRequest, "Missing symbol")
		return
	}

	result, err := h.composer.Evaluate(ctx, req.Data)
	if err != nil {
		h.logger.WithError(err).Error("Failed to evaluate symbol")
		respondError(w, http.StatusInternalServerError, "Failed to evaluate symbol")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetLatest returns the most recently synthesized composite for a symbol
// GET /api/v1/composite/{symbol}
func (h *CompositeHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	symbol := mux.Vars(r)["symbol"]

	result, found, err := h.composer.Latest(ctx, symbol)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest composite")
		respondError(w, http.StatusInternalServerError, "Failed to load latest composite")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "No composite available for symbol")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
