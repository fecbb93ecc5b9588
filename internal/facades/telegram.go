package facades

import (
	"context"
	"errors"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

// BotAPI is the part of tgbotapi.BotAPI used to send messages.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramFacade sends chat messages through the Telegram Bot API.
type TelegramFacade struct {
	bot BotAPI
}

// NewTelegramFacade creates a new facade around a bot client.
func NewTelegramFacade(bot BotAPI) *TelegramFacade {
	return &TelegramFacade{bot: bot}
}

// SendMessage delivers msg and returns the Telegram message id. Failures are
// returned as *apperrors.DeliveryError; a 400 from Telegram is ErrBadRequest,
// everything else is ErrTransport.
func (f *TelegramFacade) SendMessage(ctx context.Context, msg models.OutboundMessage) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	out := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	out.ParseMode = msg.ParseMode
	out.ReplyToMessageID = msg.ReplyToMessageID
	out.AllowSendingWithoutReply = true

	sent, err := f.bot.Send(out)
	if err != nil {
		deliveryErr := toDeliveryError(err)
		logger.Log.Errorw("failed to send telegram message",
			"chat_id", msg.ChatID,
			"reply_to", msg.ReplyToMessageID,
			"text", msg.Text,
			"code", deliveryErr.Code,
			"error", deliveryErr.Description,
		)
		return 0, deliveryErr
	}

	return sent.MessageID, nil
}

func toDeliveryError(err error) *apperrors.DeliveryError {
	var code int
	var description string

	var ptrErr *tgbotapi.Error
	var valErr tgbotapi.Error
	switch {
	case errors.As(err, &ptrErr):
		code, description = ptrErr.Code, ptrErr.Message
	case errors.As(err, &valErr):
		code, description = valErr.Code, valErr.Message
	default:
		description = err.Error()
	}

	kind := apperrors.ErrTransport
	if code == http.StatusBadRequest {
		kind = apperrors.ErrBadRequest
	}
	return &apperrors.DeliveryError{Code: code, Description: description, Kind: kind}
}
