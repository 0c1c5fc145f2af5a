package handlers

import (
	"errors"
	"net/http"

	"quickbite-orders/internal/apperr"
	"quickbite-orders/internal/domain"
	"quickbite-orders/internal/logx"
)

// QuoteHandler serves pre-checkout delivery quotes.
type QuoteHandler struct {
	usecase quoteUsecase
	logger  logx.Logger
}

// NewQuoteHandler wires a quoteUsecase into HTTP handlers.
func NewQuoteHandler(logger logx.Logger, uc quoteUsecase) *QuoteHandler {
	return &QuoteHandler{usecase: uc, logger: logger}
}

// Quote handles POST /quote.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	dropoff := domain.Coordinate{Lat: req.Dropoff.Lat, Lng: req.Dropoff.Lng}
	res, err := h.usecase.Quote(r.Context(), req.VendorID, dropoff)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, quoteToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "vendor not found")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
