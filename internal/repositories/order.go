package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

const orderColumns = `
	id, order_no, cart_id, customer_group_id, status, expire_pay_at, completed_at,
	description, created_by, updated_by, created_at, updated_at
`

// OrderRepository is the authoritative store of order state.
type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// NextSequence atomically allocates the next order sequence for day. The
// upsert takes a row lock on the day's counter, so concurrent callers get
// distinct values.
func (r *OrderRepository) NextSequence(ctx context.Context, day time.Time) (int64, error) {
	const query = `
		INSERT INTO order_sequences (day, value)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET value = order_sequences.value + 1
		RETURNING value
	`
	d := day.Format("2006-01-02")

	var seq int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &seq, query, d)

	logQuery(query, []any{d}, seq, err)

	return seq, err
}

// Insert stores a new order and fills its generated columns.
func (r *OrderRepository) Insert(ctx context.Context, o *models.Order) error {
	query := `
		INSERT INTO orders (order_no, cart_id, customer_group_id, status, expire_pay_at, description,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7, NOW(), NOW())
		RETURNING ` + orderColumns
	args := []any{o.OrderNo, o.CartID, o.CustomerGroupID, o.Status, o.ExpirePayAt, o.Description, o.CreatedBy}

	err := sqlx.GetContext(ctx, executor(ctx, r.db), o, query, args...)

	logQuery(query, args, o.ID, err)

	return mapError(err)
}

// GetActiveByGroup returns the in-progress order of a customer group.
func (r *OrderRepository) GetActiveByGroup(ctx context.Context, groupID int64) (*models.Order, error) {
	query, args, err := sqlx.In(`SELECT `+orderColumns+`
		FROM orders
		WHERE customer_group_id = ? AND status IN (?)
		ORDER BY id DESC
		LIMIT 1
	`, groupID, models.NonTerminalOrderStatuses)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
}

func (r *OrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_no = $1`
	return r.get(ctx, query, orderNo)
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *OrderRepository) get(ctx context.Context, query string, args ...any) (*models.Order, error) {
	var o models.Order
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &o, query, args...)

	logQuery(query, args, o.OrderNo, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &o, nil
}

// Transition moves an order to t.To only if its current status is a legal
// predecessor. A lost race or a terminal order yields ErrStateConflict and
// leaves the row untouched.
func (r *OrderRepository) Transition(ctx context.Context, id int64, t models.Transition) (*models.Order, error) {
	from := models.Predecessors(t.To)
	if len(from) == 0 {
		return nil, fmt.Errorf("order %d -> %s: %w", id, t.To, apperrors.ErrStateConflict)
	}

	query, args, err := sqlx.In(`
		UPDATE orders
		SET status = ?,
		    expire_pay_at = COALESCE(?, expire_pay_at),
		    completed_at = COALESCE(?, completed_at),
		    description = COALESCE(?, description),
		    updated_by = ?,
		    updated_at = NOW()
		WHERE id = ? AND status IN (?)
		RETURNING `+orderColumns,
		t.To, t.ExpirePayAt, t.CompletedAt, t.Description, t.Actor, id, from)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var o models.Order
	err = sqlx.GetContext(ctx, executor(ctx, r.db), &o, query, args...)

	logQuery(query, args, o.Status, err)

	if err == nil {
		return &o, nil
	}

	err = mapError(err)
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("order %s %s -> %s: %w", current.OrderNo, current.Status, t.To, apperrors.ErrStateConflict)
}

// ListOverdue returns orders that can still expire and whose deadline
// passed before now: those waiting for a payment account and those waiting
// for payment.
func (r *OrderRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]models.Order, error) {
	query, args, err := sqlx.In(`SELECT `+orderColumns+`
		FROM orders
		WHERE status IN (?) AND expire_pay_at < ?
		ORDER BY expire_pay_at
		LIMIT ?
	`, models.Predecessors(models.OrderStatusExpire), now, limit)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var orders []models.Order
	err = sqlx.SelectContext(ctx, executor(ctx, r.db), &orders, query, args...)

	logQuery(query, args, len(orders), err)

	return orders, err
}

// InsertNotification records one outbound delivery attempt for an order.
func (r *OrderRepository) InsertNotification(ctx context.Context, n *models.OrderNotification) error {
	const query = `
		INSERT INTO order_notifications (order_id, kind, status, telegram_message_id, error_code, error_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	args := []any{n.OrderID, n.Kind, n.Status, n.TelegramMessageID, n.ErrorCode, n.ErrorDescription}

	err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).Scan(&n.ID, &n.CreatedAt)

	logQuery(query, args, n.ID, err)

	return err
}

// CartRepository keeps the durable snapshot of promoted carts.
type CartRepository struct {
	db *sqlx.DB
}

func NewCartRepository(db *sqlx.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Insert(ctx context.Context, c *models.Cart) error {
	const query = `
		INSERT INTO carts (id, message_id, language, customer_group_id, vendor_group_id, account_id, operation,
			payment_currency, payment_amount, exchange_currency, exchange_amount, original_rate, rate, status, created_at)
		VALUES (:id, :message_id, :language, :customer_group_id, :vendor_group_id, :account_id, :operation,
			:payment_currency, :payment_amount, :exchange_currency, :exchange_amount, :original_rate, :rate, :status, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, c)

	logQuery(query, []any{c.ID, c.CustomerGroupID, c.VendorGroupID}, c.Status, err)

	return mapError(err)
}

// Update writes a fresh price and status onto a cart that is still pending.
// A cart that was confirmed meanwhile is left as is and yields ErrStateConflict.
func (r *CartRepository) Update(ctx context.Context, c *models.Cart) error {
	const query = `
		UPDATE carts
		SET vendor_group_id = :vendor_group_id,
		    operation = :operation,
		    exchange_amount = :exchange_amount,
		    original_rate = :original_rate,
		    rate = :rate,
		    status = :status
		WHERE id = :id AND status = 'pending'
	`

	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, c)

	logQuery(query, []any{c.ID, c.Rate, c.Status}, c.Status, err)

	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("cart %s is not pending: %w", c.ID, apperrors.ErrStateConflict)
	}
	return nil
}

func (r *CartRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	const query = `
		SELECT id, message_id, language, customer_group_id, vendor_group_id, account_id, operation,
			payment_currency, payment_amount, exchange_currency, exchange_amount, original_rate, rate, status, created_at
		FROM carts
		WHERE id = $1
	`

	var c models.Cart
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &c, query, id)

	logQuery(query, []any{id}, c.Status, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}
