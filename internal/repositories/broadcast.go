package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

// BroadcastRepository stores broadcast payloads and their per-recipient history.
type BroadcastRepository struct {
	db *sqlx.DB
}

func NewBroadcastRepository(db *sqlx.DB) *BroadcastRepository {
	return &BroadcastRepository{db: db}
}

// Create stores a broadcast payload and fills its id and creation time.
func (r *BroadcastRepository) Create(ctx context.Context, m *models.BroadcastMessage) error {
	const query = `
		INSERT INTO broadcast_messages (text, parse_mode, created_by, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	args := []any{m.Text, m.ParseMode, m.CreatedBy}

	err := executor(ctx, r.db).QueryRowxContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt)

	logQuery(query, args, m.ID, err)

	return err
}

func (r *BroadcastRepository) GetByID(ctx context.Context, id int64) (*models.BroadcastMessage, error) {
	const query = `
		SELECT id, text, parse_mode, created_by, created_at
		FROM broadcast_messages
		WHERE id = $1
	`

	var m models.BroadcastMessage
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &m, query, id)

	logQuery(query, []any{id}, m.ID, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

// InsertHistory records the delivery outcome for one recipient. A second
// record for the same (broadcast, chat) is ignored and reported as false.
func (r *BroadcastRepository) InsertHistory(ctx context.Context, h *models.BroadcastHistory) (bool, error) {
	const query = `
		INSERT INTO broadcast_message_histories (broadcast_id, chat_id, status, telegram_message_id, error_code, error_description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (broadcast_id, chat_id) DO NOTHING
	`
	args := []any{h.BroadcastID, h.ChatID, h.Status, h.TelegramMessageID, h.ErrorCode, h.ErrorDescription}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// ListHistory returns the recorded deliveries of a broadcast ordered by chat.
func (r *BroadcastRepository) ListHistory(ctx context.Context, broadcastID int64) ([]models.BroadcastHistory, error) {
	const query = `
		SELECT id, broadcast_id, chat_id, status, telegram_message_id, error_code, error_description, created_at
		FROM broadcast_message_histories
		WHERE broadcast_id = $1
		ORDER BY chat_id
	`

	var history []models.BroadcastHistory
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &history, query, broadcastID)

	logQuery(query, []any{broadcastID}, len(history), err)

	return history, err
}
