package facades

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

const (
	vendorRequestPaymentAccountPath = "/payment_account/request"
	vendorCheckReceiptPath          = "/receipt/check"
	vendorHurryPaymentAccountPath   = "/payment_account/hurry"
	vendorBroadcastPath             = "/broadcast"
)

// VendorBotFacade calls the vendor bot HTTP gateway.
type VendorBotFacade struct {
	client *resty.Client
}

// NewVendorBotFacade creates a facade for the vendor bot at baseURL.
// The token, when set, is sent as a bearer token.
func NewVendorBotFacade(baseURL, token string, timeout time.Duration) *VendorBotFacade {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &VendorBotFacade{client: client}
}

func (f *VendorBotFacade) RequestPaymentAccount(ctx context.Context, req models.VendorOrderRequest) error {
	return f.post(ctx, vendorRequestPaymentAccountPath, req, nil)
}

func (f *VendorBotFacade) CheckReceipt(ctx context.Context, req models.VendorOrderRequest) error {
	return f.post(ctx, vendorCheckReceiptPath, req, nil)
}

func (f *VendorBotFacade) HurryPaymentAccount(ctx context.Context, req models.VendorOrderRequest) error {
	return f.post(ctx, vendorHurryPaymentAccountPath, req, nil)
}

type vendorBroadcastResponse struct {
	MessageID int `json:"message_id"`
}

// Broadcast posts into a vendor group and returns the vendor bot's message id.
func (f *VendorBotFacade) Broadcast(ctx context.Context, req models.VendorBroadcastRequest) (int, error) {
	var out vendorBroadcastResponse
	if err := f.post(ctx, vendorBroadcastPath, req, &out); err != nil {
		return 0, err
	}
	return out.MessageID, nil
}

// post sends payload as JSON. Non-2xx responses are returned as
// *apperrors.DeliveryError of kind ErrTransport.
func (f *VendorBotFacade) post(ctx context.Context, path string, payload, result any) error {
	r := f.client.R().SetContext(ctx).SetBody(payload)
	if result != nil {
		r.SetResult(result)
	}

	resp, err := r.Post(path)
	if err != nil {
		logger.Log.Errorw("vendor bot request failed", "path", path, "payload", payload, "error", err)
		return &apperrors.DeliveryError{Description: err.Error(), Kind: apperrors.ErrTransport}
	}
	if resp.IsError() {
		logger.Log.Errorw("vendor bot rejected request",
			"path", path,
			"payload", payload,
			"status", resp.StatusCode(),
			"body", resp.String(),
		)
		return &apperrors.DeliveryError{Code: resp.StatusCode(), Description: resp.String(), Kind: apperrors.ErrTransport}
	}
	return nil
}
