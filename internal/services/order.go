package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/metrics"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=order.go -destination=order_mock_test.go -package=services

// OrderStore is the durable, authoritative order table.
type OrderStore interface {
	NextSequence(ctx context.Context, day time.Time) (int64, error)
	Insert(ctx context.Context, o *models.Order) error
	GetActiveByGroup(ctx context.Context, groupID int64) (*models.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*models.Order, error)
	Transition(ctx context.Context, id int64, t models.Transition) (*models.Order, error)
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]models.Order, error)
	InsertNotification(ctx context.Context, n *models.OrderNotification) error
}

// CartStore keeps the durable copy of the carts behind orders.
type CartStore interface {
	Insert(ctx context.Context, c *models.Cart) error
	Update(ctx context.Context, c *models.Cart) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
}

// CartCache is the advisory fast path for carts keyed by (group, order).
type CartCache interface {
	Set(ctx context.Context, groupID, orderID int64, cart *models.Cart) error
	Get(ctx context.Context, groupID, orderID int64) (*models.Cart, error)
	Delete(ctx context.Context, groupID, orderID int64) error
}

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChatGroupReader resolves chat groups and their members.
type ChatGroupReader interface {
	GetByID(ctx context.Context, id int64) (*models.ChatGroup, error)
	GetByChatID(ctx context.Context, chatID int64) (*models.ChatGroup, error)
	ListByChatIDs(ctx context.Context, chatIDs []int64) ([]models.ChatGroup, error)
	ListMembersByRole(ctx context.Context, groupID int64, role models.MemberRole) ([]models.ChatGroupMember, error)
}

// MessageSender delivers a message to a Telegram chat and returns its message id.
type MessageSender interface {
	SendMessage(ctx context.Context, msg models.OutboundMessage) (int, error)
}

// OrderService owns cart promotion and every order status change.
type OrderService struct {
	orders        OrderStore
	carts         CartStore
	cache         CartCache
	tx            TxRunner
	groups        ChatGroupReader
	sender        MessageSender
	quoter        Quoter
	converter     AmountConverter
	prefix        string
	paymentWindow time.Duration
	now           func() time.Time
}

func NewOrderService(
	orders OrderStore,
	carts CartStore,
	cache CartCache,
	tx TxRunner,
	groups ChatGroupReader,
	sender MessageSender,
	quoter Quoter,
	converter AmountConverter,
	prefix string,
	paymentWindow time.Duration,
) *OrderService {
	return &OrderService{
		orders:        orders,
		carts:         carts,
		cache:         cache,
		tx:            tx,
		groups:        groups,
		sender:        sender,
		quoter:        quoter,
		converter:     converter,
		prefix:        prefix,
		paymentWindow: paymentWindow,
		now:           time.Now,
	}
}

// CreateFromCart opens a wait_for_payment_account order for a priced,
// pending cart. The cart stays pending until the payment account reaches the
// customer. The order gets a deadline of one payment window for the vendor
// to provide the account. Cart row, sequence and order are written in one
// transaction; the cache entry is written afterwards and is best effort.
func (svc *OrderService) CreateFromCart(ctx context.Context, cart *models.Cart, actor string) (*models.Order, error) {
	if cart.Status != models.CartStatusPending || !cart.Priced() {
		return nil, fmt.Errorf("%w: cart %s is %s and priced=%t", apperrors.ErrInvalidInput, cart.ID, cart.Status, cart.Priced())
	}

	var order *models.Order
	err := svc.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := svc.carts.Insert(ctx, cart); err != nil {
			return err
		}

		day := svc.now().UTC()
		seq, err := svc.orders.NextSequence(ctx, day)
		if err != nil {
			return err
		}
		orderNo, err := models.FormatOrderNo(svc.prefix, day, seq)
		if err != nil {
			return err
		}

		deadline := svc.now().Add(svc.paymentWindow)
		order = &models.Order{
			OrderNo:         orderNo,
			CartID:          cart.ID,
			CustomerGroupID: cart.CustomerGroupID,
			Status:          models.OrderStatusWaitForPaymentAccount,
			ExpirePayAt:     &deadline,
			CreatedBy:       actor,
			UpdatedBy:       actor,
		}
		return svc.orders.Insert(ctx, order)
	})
	if err != nil {
		logger.Log.Errorw("failed to create order", "cart_id", cart.ID, "group_id", cart.CustomerGroupID, "err", err)
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(order.Status)).Inc()

	if err := svc.cache.Set(ctx, order.CustomerGroupID, order.ID, cart); err != nil {
		logger.Log.Errorw("failed to cache cart", "order_no", order.OrderNo, "err", err)
	}

	return order, nil
}

// ActiveForGroup returns the non-terminal order of a customer group or ErrNotFound.
func (svc *OrderService) ActiveForGroup(ctx context.Context, groupID int64) (*models.Order, error) {
	order, err := svc.orders.GetActiveByGroup(ctx, groupID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Log.Errorw("failed to get active order", "group_id", groupID, "err", err)
	}
	return order, err
}

// CartForOrder reads the cart from the cache and falls back to the durable
// row, refilling the cache on a miss.
func (svc *OrderService) CartForOrder(ctx context.Context, order *models.Order) (*models.Cart, error) {
	cart, err := svc.cache.Get(ctx, order.CustomerGroupID, order.ID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Log.Errorw("cart cache unavailable", "order_no", order.OrderNo, "err", err)
	}

	cart, err = svc.carts.GetByID(ctx, order.CartID)
	if err != nil {
		logger.Log.Errorw("failed to get cart", "order_no", order.OrderNo, "cart_id", order.CartID, "err", err)
		return nil, err
	}

	if !order.Status.IsTerminal() {
		if err := svc.cache.Set(ctx, order.CustomerGroupID, order.ID, cart); err != nil {
			logger.Log.Errorw("failed to refill cart cache", "order_no", order.OrderNo, "err", err)
		}
	}
	return cart, nil
}

// DeliverPaymentAccount sends the vendor's payment account text to the
// customer. Only then is the cart re-quoted and confirmed, and the order
// moved to wait_for_payment with a fresh payment deadline, both in one
// transaction. A failed delivery is recorded and leaves order and cart as is.
func (svc *OrderService) DeliverPaymentAccount(ctx context.Context, groupID int64, orderNo, text, actor string) (*models.Order, error) {
	deadline := svc.now().Add(svc.paymentWindow)
	t := models.Transition{
		To:          models.OrderStatusWaitForPayment,
		ExpirePayAt: &deadline,
		Actor:       actor,
	}

	group, order, err := svc.deliverable(ctx, groupID, orderNo, t.To)
	if err != nil {
		return nil, err
	}
	if err := svc.notify(ctx, order, group.ChatID, models.NotificationPaymentAccount, text); err != nil {
		return nil, err
	}

	cart, err := svc.CartForOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	var advanced *models.Order
	err = svc.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := svc.confirmCart(ctx, cart); err != nil {
			return err
		}
		advanced, err = svc.transition(ctx, order, t)
		return err
	})
	if err != nil {
		logger.Log.Errorw("failed to advance order after payment account delivery", "order_no", order.OrderNo, "err", err)
		return nil, err
	}

	if err := svc.cache.Set(ctx, advanced.CustomerGroupID, advanced.ID, cart); err != nil {
		logger.Log.Errorw("failed to cache confirmed cart", "order_no", advanced.OrderNo, "err", err)
	}
	return advanced, nil
}

// confirmCart re-quotes a pending cart and freezes it at that price. The
// cart keeps its price when the rate is unavailable or another vendor
// now quotes best.
func (svc *OrderService) confirmCart(ctx context.Context, cart *models.Cart) error {
	if cart.Status != models.CartStatusPending {
		return nil
	}

	quote, err := svc.quoter.Quote(ctx, cart.CustomerGroupID, cart.QuotedCurrency(), cart.Operation)
	switch {
	case errors.Is(err, apperrors.ErrArithmetic):
		return err
	case err != nil:
		logger.Log.Warnw("cart keeps its quoted price", "cart_id", cart.ID, "err", err)
	case quote == nil || quote.VendorGroupID != cart.VendorGroupID:
		logger.Log.Infow("cart keeps its quoted price", "cart_id", cart.ID, "vendor_group_id", cart.VendorGroupID)
	default:
		received, err := svc.converter.Convert(cart.PaymentAmount, quote.Price, cart.Operation)
		if err != nil {
			return err
		}
		if err := cart.Reprice(*quote, received); err != nil {
			return err
		}
	}

	if err := cart.Confirm(); err != nil {
		return err
	}
	return svc.carts.Update(ctx, cart)
}

// ConfirmPayment sends the payment confirmation to the customer and then
// completes the order.
func (svc *OrderService) ConfirmPayment(ctx context.Context, groupID int64, orderNo, text, actor string) (*models.Order, error) {
	completed := svc.now()
	return svc.deliverAndAdvance(ctx, groupID, orderNo, text, models.NotificationConfirmPay, models.Transition{
		To:          models.OrderStatusDone,
		CompletedAt: &completed,
		Actor:       actor,
	})
}

func (svc *OrderService) deliverAndAdvance(
	ctx context.Context,
	groupID int64,
	orderNo, text string,
	kind models.NotificationKind,
	t models.Transition,
) (*models.Order, error) {
	group, order, err := svc.deliverable(ctx, groupID, orderNo, t.To)
	if err != nil {
		return nil, err
	}

	if err := svc.notify(ctx, order, group.ChatID, kind, text); err != nil {
		return nil, err
	}

	return svc.transition(ctx, order, t)
}

// deliverable loads the group and order and checks that the order may move
// to status before anything is sent.
func (svc *OrderService) deliverable(ctx context.Context, groupID int64, orderNo string, to models.OrderStatus) (*models.ChatGroup, *models.Order, error) {
	group, order, err := svc.groupOrder(ctx, groupID, orderNo)
	if err != nil {
		return nil, nil, err
	}
	if !models.CanTransition(order.Status, to) {
		return nil, nil, fmt.Errorf("order %s %s -> %s: %w", order.OrderNo, order.Status, to, apperrors.ErrStateConflict)
	}
	return group, order, nil
}

// UpdatePaymentAccountStatus applies the vendor's report on the payment
// account: received moves the order to wait_for_confirmation, unavailable
// cancels it. An empty orderNo addresses the group's active order.
func (svc *OrderService) UpdatePaymentAccountStatus(
	ctx context.Context,
	groupID int64,
	orderNo string,
	status models.PaymentAccountStatus,
	actor string,
) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: payment account status %q", apperrors.ErrInvalidInput, status)
	}

	var (
		group *models.ChatGroup
		order *models.Order
		err   error
	)
	if orderNo == "" {
		group, err = svc.groups.GetByID(ctx, groupID)
		if err == nil {
			order, err = svc.ActiveForGroup(ctx, groupID)
		}
	} else {
		group, order, err = svc.groupOrder(ctx, groupID, orderNo)
	}
	if err != nil {
		return nil, err
	}

	if status == models.PaymentAccountReceived {
		return svc.transition(ctx, order, models.Transition{To: models.OrderStatusWaitForConfirmation, Actor: actor})
	}

	reason := "payment account unavailable"
	cancelled, err := svc.transition(ctx, order, models.Transition{
		To:          models.OrderStatusCancelled,
		Description: &reason,
		Actor:       actor,
	})
	if err != nil {
		return nil, err
	}

	cart, err := svc.CartForOrder(ctx, cancelled)
	lang := ""
	if err == nil {
		lang = cart.Language
	}
	_ = svc.notify(ctx, cancelled, group.ChatID, models.NotificationCancelled,
		message(lang, msgPaymentAccountUnavailable, cancelled.OrderNo))

	return cancelled, nil
}

// Cancel moves a non-terminal order to cancelled.
func (svc *OrderService) Cancel(ctx context.Context, order *models.Order, reason, actor string) (*models.Order, error) {
	t := models.Transition{To: models.OrderStatusCancelled, Actor: actor}
	if reason != "" {
		t.Description = &reason
	}
	return svc.transition(ctx, order, t)
}

// Expire moves an unpaid order to expire.
func (svc *OrderService) Expire(ctx context.Context, order *models.Order, actor string) (*models.Order, error) {
	return svc.transition(ctx, order, models.Transition{To: models.OrderStatusExpire, Actor: actor})
}

// SweepExpired expires up to limit orders whose deadline passed, whether
// still waiting for a payment account or for payment, and tells their
// customers. Orders that moved on concurrently are skipped.
func (svc *OrderService) SweepExpired(ctx context.Context, limit int, actor string) (int, error) {
	overdue, err := svc.orders.ListOverdue(ctx, svc.now(), limit)
	if err != nil {
		logger.Log.Errorw("failed to list overdue orders", "err", err)
		return 0, err
	}

	expired := 0
	for i := range overdue {
		order, err := svc.Expire(ctx, &overdue[i], actor)
		if errors.Is(err, apperrors.ErrStateConflict) {
			continue
		}
		if err != nil {
			return expired, err
		}
		expired++

		group, err := svc.groups.GetByID(ctx, order.CustomerGroupID)
		if err != nil {
			logger.Log.Errorw("failed to get group of expired order", "order_no", order.OrderNo, "err", err)
			continue
		}
		lang := group.Language
		_ = svc.notify(ctx, order, group.ChatID, models.NotificationExpired, message(lang, msgOrderExpired, order.OrderNo))
	}

	return expired, nil
}

func (svc *OrderService) transition(ctx context.Context, order *models.Order, t models.Transition) (*models.Order, error) {
	updated, err := svc.orders.Transition(ctx, order.ID, t)
	if err != nil {
		logger.Log.Errorw("order transition rejected",
			"order_no", order.OrderNo, "from", order.Status, "to", t.To, "actor", t.Actor, "err", err)
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(string(updated.Status)).Inc()

	if updated.Status.IsTerminal() {
		if err := svc.cache.Delete(ctx, updated.CustomerGroupID, updated.ID); err != nil {
			logger.Log.Errorw("failed to evict cart", "order_no", updated.OrderNo, "err", err)
		}
	}
	return updated, nil
}

// notify sends text to the customer chat and records the attempt. The
// returned error is the delivery error, never the bookkeeping one.
func (svc *OrderService) notify(ctx context.Context, order *models.Order, chatID int64, kind models.NotificationKind, text string) error {
	n := &models.OrderNotification{OrderID: order.ID, Kind: kind, Status: models.DeliverySent}

	messageID, sendErr := svc.sender.SendMessage(ctx, models.OutboundMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if sendErr != nil {
		code, desc := markFailed(n, sendErr)
		logger.Log.Errorw("failed to deliver order message",
			"order_no", order.OrderNo, "chat_id", chatID, "kind", kind, "text", text,
			"code", code, "description", desc)
	} else {
		n.TelegramMessageID = &messageID
	}

	svc.record(ctx, order, n)
	return sendErr
}

// RecordVendorRequest stores the outcome of a request forwarded to the
// vendor bot for order. A nil sendErr records it as sent.
func (svc *OrderService) RecordVendorRequest(ctx context.Context, order *models.Order, kind models.NotificationKind, sendErr error) {
	n := &models.OrderNotification{OrderID: order.ID, Kind: kind, Status: models.DeliverySent}
	if sendErr != nil {
		code, desc := markFailed(n, sendErr)
		logger.Log.Errorw("vendor request failed",
			"order_no", order.OrderNo, "kind", kind, "code", code, "description", desc)
	}
	svc.record(ctx, order, n)
}

func markFailed(n *models.OrderNotification, err error) (int, string) {
	code, desc := apperrors.DeliveryDetails(err)
	n.Status = models.DeliveryFailed
	n.ErrorDescription = &desc
	if code != 0 {
		n.ErrorCode = &code
	}
	return code, desc
}

func (svc *OrderService) record(ctx context.Context, order *models.Order, n *models.OrderNotification) {
	if err := svc.orders.InsertNotification(ctx, n); err != nil {
		logger.Log.Errorw("failed to record order notification", "order_no", order.OrderNo, "kind", n.Kind, "err", err)
	}
}

// groupOrder loads the customer group and one of its orders by number.
func (svc *OrderService) groupOrder(ctx context.Context, groupID int64, orderNo string) (*models.ChatGroup, *models.Order, error) {
	group, err := svc.groups.GetByID(ctx, groupID)
	if err != nil {
		logger.Log.Errorw("failed to get chat group", "group_id", groupID, "err", err)
		return nil, nil, err
	}

	order, err := svc.orders.GetByOrderNo(ctx, orderNo)
	if err != nil {
		logger.Log.Errorw("failed to get order", "order_no", orderNo, "err", err)
		return nil, nil, err
	}
	if order.CustomerGroupID != group.ID {
		return nil, nil, fmt.Errorf("order %s in group %d: %w", orderNo, groupID, apperrors.ErrNotFound)
	}
	return group, order, nil
}
