package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CartStatus is the lifecycle state of a negotiation before it becomes an order.
type CartStatus string

const (
	CartStatusPending   CartStatus = "pending"
	CartStatusConfirmed CartStatus = "confirmed"
)

// ErrCartNotPending is returned when a confirmed cart is mutated.
var ErrCartNotPending = errors.New("cart is not pending")

// Cart is the in-progress negotiation for a swap.
type Cart struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	MessageID        int           `json:"message_id" db:"message_id"`
	Language         string        `json:"language" db:"language"`
	CustomerGroupID  int64         `json:"customer_group_id" db:"customer_group_id"`
	VendorGroupID    int64         `json:"vendor_group_id" db:"vendor_group_id"`
	AccountID        int64         `json:"account_id" db:"account_id"`
	Operation        OperationType `json:"operation" db:"operation"`
	PaymentCurrency  string        `json:"payment_currency" db:"payment_currency"`
	PaymentAmount    float64       `json:"payment_amount" db:"payment_amount"`
	ExchangeCurrency string        `json:"exchange_currency" db:"exchange_currency"`
	ExchangeAmount   float64       `json:"exchange_amount" db:"exchange_amount"`
	OriginalRate     float64       `json:"original_rate" db:"original_rate"`
	Rate             float64       `json:"rate" db:"rate"`
	Status           CartStatus    `json:"status" db:"status"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
}

// NewCart starts a pending cart for a customer message.
func NewCart(msg ChatMessage, customerGroupID int64, language string, payment string, amount float64, exchange string) *Cart {
	return &Cart{
		ID:               uuid.New(),
		MessageID:        msg.MessageID,
		Language:         language,
		CustomerGroupID:  customerGroupID,
		AccountID:        msg.UserID,
		PaymentCurrency:  payment,
		PaymentAmount:    amount,
		ExchangeCurrency: exchange,
		Status:           CartStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
}

// Reprice applies a fresh quote. Only pending carts may change.
func (c *Cart) Reprice(q Quote, exchangeAmount float64) error {
	if c.Status != CartStatusPending {
		return ErrCartNotPending
	}
	c.Operation = q.Operation
	c.VendorGroupID = q.VendorGroupID
	c.OriginalRate = q.OriginalRate
	c.Rate = q.Price
	c.ExchangeAmount = exchangeAmount
	return nil
}

// QuotedCurrency is the currency whose rate prices the cart: the exchange
// currency when the customer buys, the payment currency when they sell.
func (c *Cart) QuotedCurrency() string {
	if c.Operation == OperationSell {
		return c.PaymentCurrency
	}
	return c.ExchangeCurrency
}

// Priced reports whether a quote has been applied.
func (c *Cart) Priced() bool {
	return c.VendorGroupID != 0 && c.Rate > 0
}

// Confirm freezes the cart at its current price. It is the only transition
// a cart has.
func (c *Cart) Confirm() error {
	if c.Status != CartStatusPending {
		return ErrCartNotPending
	}
	c.Status = CartStatusConfirmed
	return nil
}
