package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

type CurrencyRepository struct {
	db *sqlx.DB
}

func NewCurrencyRepository(db *sqlx.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Currency, error) {
	const query = `
		SELECT id, symbol, type, path, parent_id, sequence
		FROM currencies
		WHERE symbol = $1
	`

	var c models.Currency
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &c, query, symbol)

	logQuery(query, []any{symbol}, c.ID, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}
