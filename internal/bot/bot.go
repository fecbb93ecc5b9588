// Package bot runs the Telegram update loop. Updates of one chat are handled
// in arrival order by a single worker; different chats run concurrently.
package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=bot.go -destination=bot_mock_test.go -package=bot

// UpdatesSource is the long-polling part of tgbotapi.BotAPI.
type UpdatesSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// MessageHandler turns an inbound chat message into an optional reply.
type MessageHandler interface {
	Handle(ctx context.Context, msg models.ChatMessage) (*models.OutboundMessage, error)
}

// MessageSender delivers replies.
type MessageSender interface {
	SendMessage(ctx context.Context, msg models.OutboundMessage) (int, error)
}

// Bot polls Telegram and dispatches messages to sharded workers.
type Bot struct {
	source      UpdatesSource
	handler     MessageHandler
	sender      MessageSender
	workers     int
	pollTimeout int
}

func New(source UpdatesSource, handler MessageHandler, sender MessageSender, workers, pollTimeout int) *Bot {
	if workers < 1 {
		workers = 1
	}
	return &Bot{
		source:      source,
		handler:     handler,
		sender:      sender,
		workers:     workers,
		pollTimeout: pollTimeout,
	}
}

// Run polls until ctx is cancelled, then drains in-flight messages.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.pollTimeout
	cfg.AllowedUpdates = []string{"message"}

	updates := b.source.GetUpdatesChan(cfg)
	go func() {
		<-ctx.Done()
		b.source.StopReceivingUpdates()
	}()

	logger.Log.Infow("telegram bot started", "workers", b.workers)
	err := b.Dispatch(ctx, updates)
	logger.Log.Infow("telegram bot stopped")
	return err
}

// Dispatch routes updates to workers by chat id until updates is closed or
// ctx is done.
func (b *Bot) Dispatch(ctx context.Context, updates <-chan tgbotapi.Update) error {
	queues := make([]chan models.ChatMessage, b.workers)
	var g errgroup.Group
	for i := range queues {
		queue := make(chan models.ChatMessage, 64)
		queues[i] = queue
		g.Go(func() error {
			for msg := range queue {
				b.process(context.WithoutCancel(ctx), msg)
			}
			return nil
		})
	}

	defer func() {
		for _, q := range queues {
			close(q)
		}
		_ = g.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg, ok := ToChatMessage(update.Message)
			if !ok {
				continue
			}
			queues[shard(msg.ChatID, b.workers)] <- msg
		}
	}
}

func (b *Bot) process(ctx context.Context, msg models.ChatMessage) {
	reply, err := b.handler.Handle(ctx, msg)
	if err != nil {
		logger.Log.Errorw("failed to handle message", "chat_id", msg.ChatID, "message_id", msg.MessageID, "err", err)
		return
	}
	if reply == nil {
		return
	}
	if _, err := b.sender.SendMessage(ctx, *reply); err != nil {
		logger.Log.Errorw("failed to send reply", "chat_id", reply.ChatID, "err", err)
	}
}

func shard(chatID int64, n int) int {
	return int(uint64(chatID) % uint64(n))
}

// ToChatMessage converts a Telegram message. Messages without text, caption
// or photo and messages without a sender are skipped.
func ToChatMessage(m *tgbotapi.Message) (models.ChatMessage, bool) {
	if m == nil || m.Chat == nil || m.From == nil {
		return models.ChatMessage{}, false
	}

	msg := models.ChatMessage{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		UserID:    m.From.ID,
		Username:  m.From.UserName,
		Text:      m.Text,
	}
	if msg.Text == "" {
		msg.Text = m.Caption
	}
	if n := len(m.Photo); n > 0 {
		msg.PhotoFileID = m.Photo[n-1].FileID
	}
	if msg.Text == "" && msg.PhotoFileID == "" {
		return models.ChatMessage{}, false
	}
	return msg, true
}
