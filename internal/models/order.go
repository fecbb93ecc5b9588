package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the durable lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusWaitForPaymentAccount OrderStatus = "wait_for_payment_account"
	OrderStatusWaitForPayment        OrderStatus = "wait_for_payment"
	OrderStatusExpire                OrderStatus = "expire"
	OrderStatusWaitForConfirmation   OrderStatus = "wait_for_confirmation"
	OrderStatusDone                  OrderStatus = "done"
	OrderStatusCancelled             OrderStatus = "cancelled"
)

// TerminalOrderStatuses admit no further transition.
var TerminalOrderStatuses = []OrderStatus{OrderStatusDone, OrderStatusCancelled, OrderStatusExpire}

// NonTerminalOrderStatuses are the statuses of an order still in progress.
var NonTerminalOrderStatuses = []OrderStatus{
	OrderStatusWaitForPaymentAccount,
	OrderStatusWaitForPayment,
	OrderStatusWaitForConfirmation,
}

// IsTerminal reports whether s is done, cancelled or expire.
func (s OrderStatus) IsTerminal() bool {
	for _, t := range TerminalOrderStatuses {
		if s == t {
			return true
		}
	}
	return false
}

// orderPredecessors lists, per target status, the statuses it may be entered from.
var orderPredecessors = map[OrderStatus][]OrderStatus{
	OrderStatusWaitForPayment:      {OrderStatusWaitForPaymentAccount},
	OrderStatusWaitForConfirmation: {OrderStatusWaitForPayment},
	OrderStatusDone:                {OrderStatusWaitForConfirmation},
	OrderStatusExpire:              {OrderStatusWaitForPaymentAccount, OrderStatusWaitForPayment},
	OrderStatusCancelled:           NonTerminalOrderStatuses,
}

// Predecessors returns the statuses from which to is reachable.
func Predecessors(to OrderStatus) []OrderStatus {
	return orderPredecessors[to]
}

// CanTransition reports whether from -> to is an edge of the order state machine.
func CanTransition(from, to OrderStatus) bool {
	for _, p := range orderPredecessors[to] {
		if p == from {
			return true
		}
	}
	return false
}

// Order is the durable commitment derived from a confirmed cart.
type Order struct {
	ID              int64       `json:"id" db:"id"`
	OrderNo         string      `json:"order_no" db:"order_no"`
	CartID          uuid.UUID   `json:"cart_id" db:"cart_id"`
	CustomerGroupID int64       `json:"customer_group_id" db:"customer_group_id"`
	Status          OrderStatus `json:"status" db:"status"`
	ExpirePayAt     *time.Time  `json:"expire_pay_at,omitempty" db:"expire_pay_at"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
	Description     *string     `json:"description,omitempty" db:"description"`
	CreatedBy       string      `json:"created_by" db:"created_by"`
	UpdatedBy       string      `json:"updated_by" db:"updated_by"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// Transition describes a conditional status change and the columns it stamps.
type Transition struct {
	To          OrderStatus
	ExpirePayAt *time.Time
	CompletedAt *time.Time
	Description *string
	Actor       string
}

const (
	orderNoDateLayout = "20060102"
	orderNoSeqWidth   = 7
	// OrderNoLength is prefix (1) + date (8) + sequence (7).
	OrderNoLength = 16
)

// FormatOrderNo renders prefix + YYYYMMDD + zero-padded daily sequence.
func FormatOrderNo(prefix string, day time.Time, seq int64) (string, error) {
	if len(prefix) != 1 {
		return "", fmt.Errorf("order prefix must be one character, got %q", prefix)
	}
	if seq <= 0 || seq > 9_999_999 {
		return "", fmt.Errorf("order sequence %d out of range", seq)
	}
	return fmt.Sprintf("%s%s%0*d", prefix, day.Format(orderNoDateLayout), orderNoSeqWidth, seq), nil
}

// NotificationKind names the outbound message recorded for an order.
type NotificationKind string

const (
	NotificationPaymentAccount NotificationKind = "payment_account"
	NotificationConfirmPay     NotificationKind = "confirm_pay"
	NotificationCancelled      NotificationKind = "cancelled"
	NotificationExpired        NotificationKind = "expired"

	// Requests forwarded to the vendor bot on the customer's behalf.
	NotificationVendorPaymentAccount NotificationKind = "vendor_payment_account_request"
	NotificationVendorReceiptCheck   NotificationKind = "vendor_receipt_check"
	NotificationVendorHurry          NotificationKind = "vendor_hurry_payment_account"
)

// DeliveryStatus is the outcome of one outbound message attempt.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// OrderNotification records one outbound attempt for an order: a message to
// the customer chat or a request to the vendor bot.
type OrderNotification struct {
	ID                int64            `json:"id" db:"id"`
	OrderID           int64            `json:"order_id" db:"order_id"`
	Kind              NotificationKind `json:"kind" db:"kind"`
	Status            DeliveryStatus   `json:"status" db:"status"`
	TelegramMessageID *int             `json:"telegram_message_id,omitempty" db:"telegram_message_id"`
	ErrorCode         *int             `json:"error_code,omitempty" db:"error_code"`
	ErrorDescription  *string          `json:"error_description,omitempty" db:"error_description"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}
