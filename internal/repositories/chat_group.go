package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

const chatGroupColumns = `
	g.id, g.chat_id, g.name, g.type, g.language, g.default_currency_id,
	c.symbol AS default_currency, g.handling_fee_config_id
`

type ChatGroupRepository struct {
	db *sqlx.DB
}

func NewChatGroupRepository(db *sqlx.DB) *ChatGroupRepository {
	return &ChatGroupRepository{db: db}
}

// GetByChatID resolves a Telegram chat to its group record.
func (r *ChatGroupRepository) GetByChatID(ctx context.Context, chatID int64) (*models.ChatGroup, error) {
	query := `SELECT ` + chatGroupColumns + `
		FROM chat_groups g
		LEFT JOIN currencies c ON c.id = g.default_currency_id
		WHERE g.chat_id = $1
	`
	return r.get(ctx, query, chatID)
}

func (r *ChatGroupRepository) GetByID(ctx context.Context, id int64) (*models.ChatGroup, error) {
	query := `SELECT ` + chatGroupColumns + `
		FROM chat_groups g
		LEFT JOIN currencies c ON c.id = g.default_currency_id
		WHERE g.id = $1
	`
	return r.get(ctx, query, id)
}

func (r *ChatGroupRepository) get(ctx context.Context, query string, arg int64) (*models.ChatGroup, error) {
	var g models.ChatGroup
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &g, query, arg)

	logQuery(query, []any{arg}, g.ID, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &g, nil
}

// ListByChatIDs returns the known groups among chatIDs. Unknown chats are skipped.
func (r *ChatGroupRepository) ListByChatIDs(ctx context.Context, chatIDs []int64) ([]models.ChatGroup, error) {
	if len(chatIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT `+chatGroupColumns+`
		FROM chat_groups g
		LEFT JOIN currencies c ON c.id = g.default_currency_id
		WHERE g.chat_id IN (?)
	`, chatIDs)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var groups []models.ChatGroup
	err = sqlx.SelectContext(ctx, executor(ctx, r.db), &groups, query, args...)

	logQuery(query, args, len(groups), err)

	return groups, err
}

// ListMembersByRole returns the members of a group holding role.
func (r *ChatGroupRepository) ListMembersByRole(ctx context.Context, groupID int64, role models.MemberRole) ([]models.ChatGroupMember, error) {
	const query = `
		SELECT group_id, user_id, username, full_name, role
		FROM chat_group_members
		WHERE group_id = $1 AND role = $2
		ORDER BY username, user_id
	`
	args := []any{groupID, role}

	var members []models.ChatGroupMember
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &members, query, args...)

	logQuery(query, args, len(members), err)

	return members, err
}
