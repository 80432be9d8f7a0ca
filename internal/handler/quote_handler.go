package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"kart-pricing/internal/model"
	"kart-pricing/internal/pricing"
	"kart-pricing/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// QuoteHandler handles quote-related HTTP requests.
type QuoteHandler struct {
	service service.QuoteService
	logger  zerolog.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service service.QuoteService, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		logger:  logger.With().Str("handler", "quote").Logger(),
	}
}

// Create handles POST /api/quotes requests.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	quote, err := h.service.PriceQuote(r.Context(), &req)
	if err != nil {
		// Determine appropriate status code based on error type
		status := http.StatusInternalServerError
		code := model.ErrCodeInternalError
		message := "failed to price quote"

		var domainErr *model.DomainError
		var validationErr *pricing.ValidationError

		switch {
		case errors.As(err, &domainErr):
			status = http.StatusBadRequest
			code = domainErr.Code
			message = domainErr.Message
		case errors.As(err, &validationErr):
			status = http.StatusBadRequest
			code = model.ErrCodeMissingField
			message = validationErr.Error()
		case strings.Contains(err.Error(), "required") ||
			strings.Contains(err.Error(), "must contain") ||
			strings.Contains(err.Error(), "nil"):
			status = http.StatusBadRequest
			code = model.ErrCodeMissingField
			message = err.Error()
		}

		writeError(w, r, status, code, message, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, quote, h.logger)
}

// GetByID handles GET /api/quotes/{id} requests.
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	// Extract quote ID from path
	// Expecting path: /api/quotes/{id}
	path := r.URL.Path
	if len(path) < len("/api/quotes/") {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "quote ID is required", h.logger)
		return
	}
	quoteIDStr := path[len("/api/quotes/"):]

	if quoteIDStr == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "quote ID is required", h.logger)
		return
	}

	quoteID, err := uuid.Parse(quoteIDStr)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "invalid quote ID format", h.logger)
		return
	}

	quote, err := h.service.GetByID(r.Context(), quoteID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve quote", h.logger)
		return
	}

	if quote == nil {
		writeError(w, r, http.StatusNotFound, model.ErrCodeQuoteNotFound, "quote not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote, h.logger)
}
