package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/metrics"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=broadcast.go -destination=broadcast_mock_test.go -package=services

// BroadcastStore persists broadcasts and their delivery history.
type BroadcastStore interface {
	Create(ctx context.Context, m *models.BroadcastMessage) error
	GetByID(ctx context.Context, id int64) (*models.BroadcastMessage, error)
	InsertHistory(ctx context.Context, h *models.BroadcastHistory) (bool, error)
	ListHistory(ctx context.Context, broadcastID int64) ([]models.BroadcastHistory, error)
}

// BroadcastPublisher queues a broadcast job for asynchronous delivery.
type BroadcastPublisher interface {
	Publish(ctx context.Context, job models.BroadcastJob) error
}

// VendorBroadcaster posts into vendor groups through the vendor bot.
type VendorBroadcaster interface {
	Broadcast(ctx context.Context, req models.VendorBroadcastRequest) (int, error)
}

// BroadcastService accepts broadcasts and fans them out per recipient.
type BroadcastService struct {
	store       BroadcastStore
	publisher   BroadcastPublisher
	sender      MessageSender
	vendor      VendorBroadcaster
	groups      ChatGroupReader
	concurrency int
}

// NewBroadcastService creates the service. A nil publisher delivers jobs in
// a background goroutine of this process.
func NewBroadcastService(
	store BroadcastStore,
	publisher BroadcastPublisher,
	sender MessageSender,
	vendor VendorBroadcaster,
	groups ChatGroupReader,
	concurrency int,
) *BroadcastService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BroadcastService{
		store:       store,
		publisher:   publisher,
		sender:      sender,
		vendor:      vendor,
		groups:      groups,
		concurrency: concurrency,
	}
}

// Enqueue stores the broadcast and queues it. Delivery happens later.
func (svc *BroadcastService) Enqueue(ctx context.Context, text, parseMode string, chatIDs []int64, actor string) (*models.BroadcastMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: broadcast text is empty", apperrors.ErrInvalidInput)
	}
	recipients := uniqueChatIDs(chatIDs)
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: broadcast has no recipients", apperrors.ErrInvalidInput)
	}
	if parseMode == "" {
		parseMode = models.ParseModeHTML
	}

	msg := &models.BroadcastMessage{Text: text, ParseMode: parseMode, CreatedBy: actor}
	if err := svc.store.Create(ctx, msg); err != nil {
		logger.Log.Errorw("failed to store broadcast", "err", err)
		return nil, err
	}

	job := models.BroadcastJob{BroadcastID: msg.ID, ChatIDs: recipients}
	if svc.publisher == nil {
		go func() {
			if err := svc.Deliver(context.WithoutCancel(ctx), job); err != nil {
				logger.Log.Errorw("broadcast delivery failed", "broadcast_id", job.BroadcastID, "err", err)
			}
		}()
		return msg, nil
	}

	if err := svc.publisher.Publish(ctx, job); err != nil {
		logger.Log.Errorw("failed to queue broadcast", "broadcast_id", msg.ID, "err", err)
		return nil, err
	}
	return msg, nil
}

// Deliver sends a queued broadcast to every recipient without a history row
// yet. One recipient failing does not stop the others; its row is marked
// failed. The returned error only reports history rows that could not be
// written, so redelivering the job is safe.
func (svc *BroadcastService) Deliver(ctx context.Context, job models.BroadcastJob) error {
	msg, err := svc.store.GetByID(ctx, job.BroadcastID)
	if err != nil {
		logger.Log.Errorw("failed to load broadcast", "broadcast_id", job.BroadcastID, "err", err)
		return err
	}

	recorded, err := svc.store.ListHistory(ctx, job.BroadcastID)
	if err != nil {
		return err
	}
	seen := make(map[int64]bool, len(recorded))
	for _, h := range recorded {
		seen[h.ChatID] = true
	}

	pending := make([]int64, 0, len(job.ChatIDs))
	for _, id := range uniqueChatIDs(job.ChatIDs) {
		if !seen[id] {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	groups, err := svc.groups.ListByChatIDs(ctx, pending)
	if err != nil {
		logger.Log.Errorw("failed to resolve broadcast recipients", "broadcast_id", job.BroadcastID, "err", err)
		return err
	}
	vendorChats := make(map[int64]bool, len(groups))
	for _, g := range groups {
		vendorChats[g.ChatID] = g.Type == models.GroupTypeVendor
	}

	var g errgroup.Group
	g.SetLimit(svc.concurrency)
	for _, chatID := range pending {
		chatID := chatID
		g.Go(func() error {
			return svc.deliverOne(ctx, msg, chatID, vendorChats[chatID])
		})
	}
	return g.Wait()
}

func (svc *BroadcastService) deliverOne(ctx context.Context, msg *models.BroadcastMessage, chatID int64, viaVendor bool) error {
	var (
		messageID int
		err       error
	)
	if viaVendor {
		messageID, err = svc.vendor.Broadcast(ctx, models.VendorBroadcastRequest{
			ChatID: chatID, Text: msg.Text, ParseMode: msg.ParseMode,
		})
	} else {
		messageID, err = svc.sender.SendMessage(ctx, models.OutboundMessage{
			ChatID: chatID, Text: msg.Text, ParseMode: msg.ParseMode,
		})
	}

	h := &models.BroadcastHistory{BroadcastID: msg.ID, ChatID: chatID, Status: models.DeliverySent}
	if err != nil {
		code, desc := apperrors.DeliveryDetails(err)
		h.Status = models.DeliveryFailed
		h.ErrorDescription = &desc
		if code != 0 {
			h.ErrorCode = &code
		}
		logger.Log.Errorw("broadcast delivery failed",
			"broadcast_id", msg.ID, "chat_id", chatID, "via_vendor", viaVendor, "code", code, "description", desc)
	} else {
		h.TelegramMessageID = &messageID
	}
	metrics.BroadcastDeliveries.WithLabelValues(string(h.Status)).Inc()

	if _, err := svc.store.InsertHistory(ctx, h); err != nil {
		logger.Log.Errorw("failed to record broadcast delivery", "broadcast_id", msg.ID, "chat_id", chatID, "err", err)
		return err
	}
	return nil
}

// History returns a broadcast and its per-recipient delivery rows.
func (svc *BroadcastService) History(ctx context.Context, id int64) (*models.BroadcastMessage, []models.BroadcastHistory, error) {
	msg, err := svc.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := svc.store.ListHistory(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to list broadcast history", "broadcast_id", id, "err", err)
		return nil, nil, err
	}
	return msg, history, nil
}

func uniqueChatIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
