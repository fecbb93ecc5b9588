package models

import "time"

// OperationType is the customer's direction relative to the quoted currency.
type OperationType string

const (
	OperationBuy  OperationType = "buy"
	OperationSell OperationType = "sell"
)

// ExchangeRate is one vendor group's quote for one currency. Either side
// may be absent when the vendor quotes a single direction.
type ExchangeRate struct {
	ID         int64     `json:"id" db:"id"`
	GroupID    int64     `json:"group_id" db:"group_id"`
	CurrencyID int64     `json:"currency_id" db:"currency_id"`
	Currency   string    `json:"currency" db:"currency"`
	BuyRate    *float64  `json:"buy_rate" db:"buy_rate"`
	SellRate   *float64  `json:"sell_rate" db:"sell_rate"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// RateFor returns the side of the quote used by the given operation.
func (r ExchangeRate) RateFor(op OperationType) *float64 {
	if op == OperationSell {
		return r.SellRate
	}
	return r.BuyRate
}

// CurrencyRate is one entry of a bulk rate upsert.
type CurrencyRate struct {
	Currency string   `json:"currency"`
	BuyRate  *float64 `json:"buy_rate"`
	SellRate *float64 `json:"sell_rate"`
}

// Quote is a priced exchange rate: the optimal vendor rate with the
// applicable handling fee applied.
type Quote struct {
	Currency      string        `json:"currency"`
	Operation     OperationType `json:"operation"`
	VendorGroupID int64         `json:"vendor_group_id"`
	OriginalRate  float64       `json:"original_rate"`
	Price         float64       `json:"price"`
}
