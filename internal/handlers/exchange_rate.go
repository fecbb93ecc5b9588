package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=exchange_rate.go -destination=exchange_rate_mock_test.go -package=handlers

// ExchangeRateLister lists the rates a vendor group quotes.
type ExchangeRateLister interface {
	ListByGroup(ctx context.Context, groupID int64) ([]models.ExchangeRate, error)
}

// ExchangeRateUpserter stores a vendor group's rates.
type ExchangeRateUpserter interface {
	UpsertRates(ctx context.Context, groupID int64, rates []models.CurrencyRate) error
}

// ExchangeRatesResponse lists a group's rates
// swagger:model ExchangeRatesResponse
type ExchangeRatesResponse struct {
	GroupID int64                 `json:"group_id"`
	Rates   []models.ExchangeRate `json:"rates"`
}

// UpsertCurrencyRatesRequest is the bulk rate update of one vendor group
// swagger:model UpsertCurrencyRatesRequest
type UpsertCurrencyRatesRequest struct {
	// Vendor chat group id
	// required: true
	GroupID int64 `json:"group_id"`

	// Per-currency buy/sell rates
	// required: true
	Rates []models.CurrencyRate `json:"rates"`
}

// NewGetExchangeRatesHandler returns an HTTP handler for a group's current rates.
// @Summary Get exchange rates of a group
// @Description Returns the buy/sell rates currently quoted by a vendor group
// @Tags exchange_rate
// @Produce json
// @Param group_id path int true "Chat group id"
// @Success 200 {object} handlers.ExchangeRatesResponse "Exchange rates"
// @Failure 400 {object} handlers.ErrorResponse "Invalid group id"
// @Failure 404 {object} handlers.ErrorResponse "Group has no rates"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /exchange_rate/{group_id} [get]
// @Security BearerAuth
func NewGetExchangeRatesHandler(svc ExchangeRateLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := int64Param(r, "group_id")
		if err != nil {
			writeError(w, err)
			return
		}

		rates, err := svc.ListByGroup(r.Context(), groupID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ExchangeRatesResponse{GroupID: groupID, Rates: rates})
	}
}

// NewUpsertCurrencyRatesHandler returns an HTTP handler for bulk rate updates.
// @Summary Upsert currency rates
// @Description Creates or replaces a vendor group's buy/sell rates. Replaying a payload is a no-op.
// @Tags exchange_rate
// @Accept json
// @Produce json
// @Param request body handlers.UpsertCurrencyRatesRequest true "Rates"
// @Success 200 {object} handlers.ExchangeRatesResponse "Stored rates"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 404 {object} handlers.ErrorResponse "Unknown group or currency"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /exchange_rate/currency_rate [post]
// @Security BearerAuth
func NewUpsertCurrencyRatesHandler(upserter ExchangeRateUpserter, lister ExchangeRateLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpsertCurrencyRatesRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if err := upserter.UpsertRates(r.Context(), req.GroupID, req.Rates); err != nil {
			writeError(w, err)
			return
		}

		rates, err := lister.ListByGroup(r.Context(), req.GroupID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ExchangeRatesResponse{GroupID: req.GroupID, Rates: rates})
	}
}
