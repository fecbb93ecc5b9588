package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/metrics"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=workflow.go -destination=workflow_mock_test.go -package=services

// NLUClassifier classifies a chat message into a reply and an action.
type NLUClassifier interface {
	Classify(ctx context.Context, req models.NLURequest) (*models.NLUResponse, error)
}

// VendorGateway forwards order requests to the vendor bot.
type VendorGateway interface {
	RequestPaymentAccount(ctx context.Context, req models.VendorOrderRequest) error
	CheckReceipt(ctx context.Context, req models.VendorOrderRequest) error
	HurryPaymentAccount(ctx context.Context, req models.VendorOrderRequest) error
}

// Quoter prices a currency for a customer group.
type Quoter interface {
	Quote(ctx context.Context, groupID int64, symbol string, op models.OperationType) (*models.Quote, error)
}

// OrderManager is the part of the order store the workflow drives.
type OrderManager interface {
	ActiveForGroup(ctx context.Context, groupID int64) (*models.Order, error)
	CreateFromCart(ctx context.Context, cart *models.Cart, actor string) (*models.Order, error)
	CartForOrder(ctx context.Context, order *models.Order) (*models.Cart, error)
	Cancel(ctx context.Context, order *models.Order, reason, actor string) (*models.Order, error)
	RecordVendorRequest(ctx context.Context, order *models.Order, kind models.NotificationKind, sendErr error)
}

// AmountConverter computes what the customer receives at a price.
type AmountConverter interface {
	Convert(amount, price float64, op models.OperationType) (float64, error)
}

// CustomerServicePlaceholder in an NLU reply is replaced with mentions of
// the group's customer service members.
const CustomerServicePlaceholder = "{customer_service}"

// turn is one inbound message being handled.
type turn struct {
	msg   models.ChatMessage
	group *models.ChatGroup
	nlu   *models.NLUResponse
	lang  string
	actor string
}

type actionHandler func(ctx context.Context, t *turn) (string, error)

// trade is the currency pair of a request with the side the customer takes
// on the quoted currency.
type trade struct {
	payment  string
	exchange string
	currency string
	op       models.OperationType
}

// WorkflowService dispatches classified chat messages to workflow branches.
type WorkflowService struct {
	nlu          NLUClassifier
	quoter       Quoter
	orders       OrderManager
	vendor       VendorGateway
	groups       ChatGroupReader
	converter    AmountConverter
	baseCurrency string
	disabled     map[models.Action]bool
	handlers     map[models.Action]actionHandler
}

func NewWorkflowService(
	nlu NLUClassifier,
	quoter Quoter,
	orders OrderManager,
	vendor VendorGateway,
	groups ChatGroupReader,
	converter AmountConverter,
	baseCurrency string,
	disabledActions []string,
) *WorkflowService {
	svc := &WorkflowService{
		nlu:          nlu,
		quoter:       quoter,
		orders:       orders,
		vendor:       vendor,
		groups:       groups,
		converter:    converter,
		baseCurrency: models.NormalizeSymbol(baseCurrency),
		disabled:     make(map[models.Action]bool, len(disabledActions)),
	}
	for _, a := range disabledActions {
		if a = strings.TrimSpace(a); a != "" {
			svc.disabled[models.Action(a)] = true
		}
	}

	svc.handlers = map[models.Action]actionHandler{
		models.ActionExchangeRate:             svc.exchangeRate,
		models.ActionExchangeRateDefaultToken: svc.exchangeRateDefaultToken,
		models.ActionSwap:                     svc.swap,
		models.ActionSwapCrypto:               svc.swap,
		models.ActionSwapLegalCurrency:        svc.swap,
		models.ActionHumanCustomerService:     svc.humanCustomerService,
		models.ActionGetAccount:               svc.withActiveOrder(svc.getAccount),
		models.ActionReceipt:                  svc.withActiveOrder(svc.checkReceipt),
		models.ActionPaymentCheck:             svc.withActiveOrder(svc.checkReceipt),
		models.ActionCancelOrder:              svc.withActiveOrder(svc.cancelOrder),
		models.ActionHurry:                    svc.withActiveOrder(svc.hurry),
		models.ActionFallback:                 svc.fallback,
	}
	return svc
}

// Handle classifies a customer message and runs the matching branch. It
// returns the reply to post, or nil when the chat is not a known customer
// group or the branch has nothing to say.
func (svc *WorkflowService) Handle(ctx context.Context, msg models.ChatMessage) (*models.OutboundMessage, error) {
	group, err := svc.groups.GetByChatID(ctx, msg.ChatID)
	if errors.Is(err, apperrors.ErrNotFound) {
		logger.Log.Infow("message from unknown chat ignored", "chat_id", msg.ChatID)
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get chat group", "chat_id", msg.ChatID, "err", err)
		return nil, err
	}
	if group.Type != models.GroupTypeCustomer {
		return nil, nil
	}

	resp, err := svc.nlu.Classify(ctx, models.NLURequest{
		ChatID:      msg.ChatID,
		GroupID:     group.ID,
		MessageID:   msg.MessageID,
		UserID:      msg.UserID,
		Text:        msg.Text,
		PhotoFileID: msg.PhotoFileID,
		Language:    group.Language,
	})
	if err != nil {
		logger.Log.Errorw("failed to classify message", "chat_id", msg.ChatID, "message_id", msg.MessageID, "err", err)
		return nil, err
	}

	t := &turn{
		msg:   msg,
		group: group,
		nlu:   resp,
		lang:  resp.Language,
		actor: strconv.FormatInt(msg.UserID, 10),
	}
	if t.lang == "" {
		t.lang = group.Language
	}

	action := svc.route(resp.Action)
	start := time.Now()
	text, err := svc.handlers[action](ctx, t)
	metrics.WorkflowActionDuration.WithLabelValues(string(action)).Observe(time.Since(start).Seconds())

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
		logger.Log.Errorw("workflow branch failed", "action", action, "chat_id", msg.ChatID, "message_id", msg.MessageID, "err", err)
	}
	metrics.WorkflowActions.WithLabelValues(string(action), outcome).Inc()

	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return &models.OutboundMessage{
		ChatID:           msg.ChatID,
		Text:             text,
		ParseMode:        models.ParseModeHTML,
		ReplyToMessageID: msg.MessageID,
	}, nil
}

// route maps missing, unknown and disabled actions to the fallback branch.
func (svc *WorkflowService) route(action models.Action) models.Action {
	if _, ok := svc.handlers[action]; !ok || svc.disabled[action] {
		return models.ActionFallback
	}
	return action
}

func (svc *WorkflowService) fallback(_ context.Context, t *turn) (string, error) {
	return t.nlu.Reply, nil
}

// deriveTrade normalizes the pair. Paying with the base currency buys the
// exchange currency; paying with anything else sells the payment currency.
func (svc *WorkflowService) deriveTrade(resp *models.NLUResponse) trade {
	tr := trade{
		payment:  models.NormalizeSymbol(resp.PaymentCurrency),
		exchange: models.NormalizeSymbol(resp.ExchangeCurrency),
	}
	if tr.payment == "" {
		tr.payment = svc.baseCurrency
	}
	if tr.payment == svc.baseCurrency {
		tr.currency, tr.op = tr.exchange, models.OperationBuy
		return tr
	}
	if tr.exchange == "" {
		tr.exchange = svc.baseCurrency
	}
	tr.currency, tr.op = tr.payment, models.OperationSell
	return tr
}

func (svc *WorkflowService) exchangeRate(ctx context.Context, t *turn) (string, error) {
	tr := svc.deriveTrade(t.nlu)
	if tr.currency == "" {
		return t.nlu.Reply, nil
	}
	return svc.quoteReply(ctx, t, tr.currency, tr.op)
}

func (svc *WorkflowService) exchangeRateDefaultToken(ctx context.Context, t *turn) (string, error) {
	if t.group.DefaultCurrency == nil || *t.group.DefaultCurrency == "" {
		return message(t.lang, msgSetDefaultCurrency), nil
	}
	return svc.quoteReply(ctx, t, *t.group.DefaultCurrency, models.OperationBuy)
}

func (svc *WorkflowService) quoteReply(ctx context.Context, t *turn, currency string, op models.OperationType) (string, error) {
	quote, err := svc.quoter.Quote(ctx, t.group.ID, currency, op)
	if err != nil {
		return "", err
	}
	if quote == nil {
		return message(t.lang, msgRateUnavailable, models.NormalizeSymbol(currency)), nil
	}
	return message(t.lang, msgQuote, quote.Currency, formatRate(quote.Price), quote.Operation), nil
}

func (svc *WorkflowService) swap(ctx context.Context, t *turn) (string, error) {
	if reply, blocked, err := svc.inProgress(ctx, t); err != nil || blocked {
		return reply, err
	}

	tr := svc.deriveTrade(t.nlu)
	if tr.currency == "" {
		return t.nlu.Reply, nil
	}
	if t.nlu.AmountToExchange == nil || *t.nlu.AmountToExchange <= 0 {
		return message(t.lang, msgAmountRequired, tr.payment), nil
	}
	amount := *t.nlu.AmountToExchange

	quote, err := svc.quoter.Quote(ctx, t.group.ID, tr.currency, tr.op)
	if err != nil {
		return "", err
	}
	if quote == nil {
		return message(t.lang, msgRateUnavailable, tr.currency), nil
	}

	received, err := svc.converter.Convert(amount, quote.Price, tr.op)
	if err != nil {
		return "", err
	}

	cart := models.NewCart(t.msg, t.group.ID, t.lang, tr.payment, amount, tr.exchange)
	if err := cart.Reprice(*quote, received); err != nil {
		return "", err
	}

	order, err := svc.orders.CreateFromCart(ctx, cart, t.actor)
	if errors.Is(err, apperrors.ErrConflict) {
		// another message of this group won the race
		if reply, blocked, err := svc.inProgress(ctx, t); err != nil || blocked {
			return reply, err
		}
	}
	if err != nil {
		return "", err
	}

	key := msgOrderCreated
	sendErr := svc.vendor.RequestPaymentAccount(ctx, svc.vendorRequest(ctx, t, order, cart))
	svc.orders.RecordVendorRequest(ctx, order, models.NotificationVendorPaymentAccount, sendErr)
	if sendErr != nil {
		key = msgOrderCreatedVendorUnreachable
	}

	reply := message(t.lang, key,
		order.OrderNo, formatAmount(amount), tr.payment, formatAmount(received), tr.exchange, formatRate(quote.Price))
	if t.nlu.Reply != "" {
		reply = t.nlu.Reply + "\n\n" + reply
	}
	return reply, nil
}

// inProgress reports whether the group already has a non-terminal order.
func (svc *WorkflowService) inProgress(ctx context.Context, t *turn) (string, bool, error) {
	active, err := svc.orders.ActiveForGroup(ctx, t.group.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return message(t.lang, msgOrderInProgress, active.OrderNo), true, nil
}

func (svc *WorkflowService) humanCustomerService(ctx context.Context, t *turn) (string, error) {
	members, err := svc.groups.ListMembersByRole(ctx, t.group.ID, models.MemberRoleCustomerService)
	if err != nil {
		logger.Log.Errorw("failed to list customer service members", "group_id", t.group.ID, "err", err)
		return "", err
	}

	mentions := make([]string, 0, len(members))
	for _, m := range members {
		name := m.Username
		if name == "" {
			name = m.FullName
		}
		mentions = append(mentions, fmt.Sprintf(`<a href="tg://user?id=%d">@%s</a>`, m.UserID, html.EscapeString(name)))
	}
	list := strings.Join(mentions, " ")
	if list == "" {
		list = message(t.lang, msgNoCustomerService)
	}

	if t.nlu.Reply == "" {
		return list, nil
	}
	return strings.ReplaceAll(t.nlu.Reply, CustomerServicePlaceholder, list), nil
}

// withActiveOrder runs fn against the group's in-progress order.
func (svc *WorkflowService) withActiveOrder(fn func(ctx context.Context, t *turn, order *models.Order) (string, error)) actionHandler {
	return func(ctx context.Context, t *turn) (string, error) {
		order, err := svc.orders.ActiveForGroup(ctx, t.group.ID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return message(t.lang, msgOrderNotFound), nil
		}
		if err != nil {
			return "", err
		}
		return fn(ctx, t, order)
	}
}

func (svc *WorkflowService) getAccount(ctx context.Context, t *turn, order *models.Order) (string, error) {
	return svc.forward(ctx, t, order, models.NotificationVendorPaymentAccount, svc.vendor.RequestPaymentAccount)
}

func (svc *WorkflowService) checkReceipt(ctx context.Context, t *turn, order *models.Order) (string, error) {
	return svc.forward(ctx, t, order, models.NotificationVendorReceiptCheck, svc.vendor.CheckReceipt)
}

func (svc *WorkflowService) hurry(ctx context.Context, t *turn, order *models.Order) (string, error) {
	return svc.forward(ctx, t, order, models.NotificationVendorHurry, svc.vendor.HurryPaymentAccount)
}

// forward sends the order to the vendor bot and records the attempt. The
// customer gets the NLU reply when the vendor bot took the request and a
// retry hint when it did not.
func (svc *WorkflowService) forward(
	ctx context.Context,
	t *turn,
	order *models.Order,
	kind models.NotificationKind,
	call func(context.Context, models.VendorOrderRequest) error,
) (string, error) {
	cart, err := svc.orders.CartForOrder(ctx, order)
	if err != nil {
		return "", err
	}
	sendErr := call(ctx, svc.vendorRequest(ctx, t, order, cart))
	svc.orders.RecordVendorRequest(ctx, order, kind, sendErr)
	if sendErr != nil {
		return message(t.lang, msgVendorUnreachable, order.OrderNo), nil
	}
	return t.nlu.Reply, nil
}

func (svc *WorkflowService) cancelOrder(ctx context.Context, t *turn, order *models.Order) (string, error) {
	cancelled, err := svc.orders.Cancel(ctx, order, "cancelled by customer", t.actor)
	if errors.Is(err, apperrors.ErrStateConflict) {
		return message(t.lang, msgOrderNotCancellable, order.OrderNo), nil
	}
	if err != nil {
		return "", err
	}
	if t.nlu.Reply != "" {
		return t.nlu.Reply, nil
	}
	return message(t.lang, msgOrderCancelled, cancelled.OrderNo), nil
}

func (svc *WorkflowService) vendorRequest(ctx context.Context, t *turn, order *models.Order, cart *models.Cart) models.VendorOrderRequest {
	req := models.VendorOrderRequest{
		OrderNo:          order.OrderNo,
		CustomerGroupID:  order.CustomerGroupID,
		CustomerChatID:   t.msg.ChatID,
		MessageID:        t.msg.MessageID,
		Language:         cart.Language,
		Operation:        cart.Operation,
		PaymentCurrency:  cart.PaymentCurrency,
		PaymentAmount:    cart.PaymentAmount,
		ExchangeCurrency: cart.ExchangeCurrency,
		ExchangeAmount:   cart.ExchangeAmount,
		Rate:             cart.Rate,
		PhotoFileID:      t.msg.PhotoFileID,
	}
	vendor, err := svc.groups.GetByID(ctx, cart.VendorGroupID)
	if err != nil {
		logger.Log.Errorw("failed to get vendor group", "group_id", cart.VendorGroupID, "err", err)
		return req
	}
	req.VendorChatID = vendor.ChatID
	return req
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
