package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=order.go -destination=order_mock_test.go -package=handlers

// OrderProgressor advances orders on behalf of the vendor bot.
type OrderProgressor interface {
	DeliverPaymentAccount(ctx context.Context, groupID int64, orderNo, text, actor string) (*models.Order, error)
	ConfirmPayment(ctx context.Context, groupID int64, orderNo, text, actor string) (*models.Order, error)
	UpdatePaymentAccountStatus(ctx context.Context, groupID int64, orderNo string, status models.PaymentAccountStatus, actor string) (*models.Order, error)
}

// OrderMessageRequest carries vendor text for a customer's order
// swagger:model OrderMessageRequest
type OrderMessageRequest struct {
	// Customer chat group id
	// required: true
	GroupID int64 `json:"group_id"`
	// Order number
	// required: true
	OrderID string `json:"order_id"`
	// Text delivered to the customer chat
	// required: true
	Text string `json:"text"`
}

// PaymentAccountStatusRequest reports the payment account of the active order
// swagger:model PaymentAccountStatusRequest
type PaymentAccountStatusRequest struct {
	// received or unavailable
	// required: true
	Status models.PaymentAccountStatus `json:"status"`
}

// OrderPaymentAccountStatusRequest reports the payment account of an order
// swagger:model OrderPaymentAccountStatusRequest
type OrderPaymentAccountStatusRequest struct {
	// required: true
	OrderID string `json:"order_id"`
	// received or unavailable
	// required: true
	Status models.PaymentAccountStatus `json:"status"`
}

// NewPaymentAccountHandler returns an HTTP handler delivering a payment account.
// @Summary Deliver a payment account
// @Description Sends the vendor's payment account to the customer chat and starts the payment window
// @Tags telegram
// @Accept json
// @Produce json
// @Param request body handlers.OrderMessageRequest true "Payment account"
// @Success 200 {object} models.Order
// @Failure 404 {object} handlers.ErrorResponse "Order not found"
// @Failure 409 {object} handlers.ErrorResponse "Order is not waiting for a payment account"
// @Failure 502 {object} handlers.ErrorResponse "Delivery to the customer failed"
// @Router /telegram/messages/payment_account [post]
// @Security BearerAuth
func NewPaymentAccountHandler(svc OrderProgressor, actorGetter ActorGetter) http.HandlerFunc {
	return newOrderMessageHandler(svc.DeliverPaymentAccount, actorGetter)
}

// NewConfirmPayHandler returns an HTTP handler confirming a payment.
// @Summary Confirm payment
// @Description Sends the payment confirmation to the customer chat and completes the order
// @Tags telegram
// @Accept json
// @Produce json
// @Param request body handlers.OrderMessageRequest true "Confirmation"
// @Success 200 {object} models.Order
// @Failure 404 {object} handlers.ErrorResponse "Order not found"
// @Failure 409 {object} handlers.ErrorResponse "Order is not waiting for confirmation"
// @Failure 502 {object} handlers.ErrorResponse "Delivery to the customer failed"
// @Router /telegram/messages/confirm_pay [post]
// @Security BearerAuth
func NewConfirmPayHandler(svc OrderProgressor, actorGetter ActorGetter) http.HandlerFunc {
	return newOrderMessageHandler(svc.ConfirmPayment, actorGetter)
}

func newOrderMessageHandler(
	apply func(ctx context.Context, groupID int64, orderNo, text, actor string) (*models.Order, error),
	actorGetter ActorGetter,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r, actorGetter)
		if !ok {
			return
		}

		var req OrderMessageRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if req.OrderID == "" || req.Text == "" {
			writeBadRequest(w, "order_id and text are required")
			return
		}

		order, err := apply(r.Context(), req.GroupID, req.OrderID, req.Text, actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

// NewPaymentAccountStatusHandler returns an HTTP handler for the active order's payment account status.
// @Summary Update payment account status of the active order
// @Tags telegram
// @Accept json
// @Produce json
// @Param group_id path int true "Customer chat group id"
// @Param request body handlers.PaymentAccountStatusRequest true "Status"
// @Success 200 {object} models.Order
// @Failure 404 {object} handlers.ErrorResponse "No active order"
// @Failure 409 {object} handlers.ErrorResponse "Transition rejected"
// @Router /telegram/messages/payment_account_status/{group_id} [put]
// @Security BearerAuth
func NewPaymentAccountStatusHandler(svc OrderProgressor, actorGetter ActorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r, actorGetter)
		if !ok {
			return
		}
		groupID, err := int64Param(r, "group_id")
		if err != nil {
			writeError(w, err)
			return
		}

		var req PaymentAccountStatusRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		order, err := svc.UpdatePaymentAccountStatus(r.Context(), groupID, "", req.Status, actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}

// NewOrderPaymentAccountStatusHandler returns an HTTP handler for an order's payment account status.
// @Summary Update payment account status of an order
// @Tags telegram
// @Accept json
// @Produce json
// @Param group_id path int true "Customer chat group id"
// @Param request body handlers.OrderPaymentAccountStatusRequest true "Status"
// @Success 200 {object} models.Order
// @Failure 404 {object} handlers.ErrorResponse "Order not found"
// @Failure 409 {object} handlers.ErrorResponse "Transition rejected"
// @Router /telegram/messages/order_payment_account_status/{group_id} [put]
// @Security BearerAuth
func NewOrderPaymentAccountStatusHandler(svc OrderProgressor, actorGetter ActorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r, actorGetter)
		if !ok {
			return
		}
		groupID, err := int64Param(r, "group_id")
		if err != nil {
			writeError(w, err)
			return
		}

		var req OrderPaymentAccountStatusRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if req.OrderID == "" {
			writeBadRequest(w, "order_id is required")
			return
		}

		order, err := svc.UpdatePaymentAccountStatus(r.Context(), groupID, req.OrderID, req.Status, actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}
