package facades

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

const nluClassifyPath = "/classify"

// NLUFacade calls the message classification service.
type NLUFacade struct {
	client *resty.Client
}

func NewNLUFacade(baseURL string, timeout time.Duration) *NLUFacade {
	return &NLUFacade{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// Classify returns the NLU reply and action for a chat message.
func (f *NLUFacade) Classify(ctx context.Context, req models.NLURequest) (*models.NLUResponse, error) {
	var out models.NLUResponse
	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post(nluClassifyPath)
	if err != nil {
		logger.Log.Errorw("nlu request failed", "chat_id", req.ChatID, "error", err)
		return nil, fmt.Errorf("%w: nlu: %v", apperrors.ErrTransport, err)
	}
	if resp.IsError() {
		logger.Log.Errorw("nlu rejected request",
			"chat_id", req.ChatID,
			"status", resp.StatusCode(),
			"body", resp.String(),
		)
		return nil, fmt.Errorf("%w: nlu returned %d", apperrors.ErrTransport, resp.StatusCode())
	}
	return &out, nil
}
