package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

// ExchangeRateReadRepository reads vendor quotes.
type ExchangeRateReadRepository struct {
	db *sqlx.DB
}

func NewExchangeRateReadRepository(db *sqlx.DB) *ExchangeRateReadRepository {
	return &ExchangeRateReadRepository{db: db}
}

// ListByGroup returns every rate quoted by a chat group.
func (r *ExchangeRateReadRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.ExchangeRate, error) {
	const query = `
		SELECT er.id, er.group_id, er.currency_id, c.symbol AS currency, er.buy_rate, er.sell_rate, er.updated_at
		FROM exchange_rates er
		JOIN currencies c ON c.id = er.currency_id
		WHERE er.group_id = $1
		ORDER BY c.sequence, c.symbol
	`

	var rates []models.ExchangeRate
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rates, query, groupID)

	logQuery(query, []any{groupID}, len(rates), err)

	return rates, err
}

// ListQuotes returns the vendor-group quotes for a currency that carry the
// side used by op. Rows without that side are excluded.
func (r *ExchangeRateReadRepository) ListQuotes(ctx context.Context, currencyID int64, op models.OperationType) ([]models.ExchangeRate, error) {
	column := "er.buy_rate"
	if op == models.OperationSell {
		column = "er.sell_rate"
	}

	query := fmt.Sprintf(`
		SELECT er.id, er.group_id, er.currency_id, c.symbol AS currency, er.buy_rate, er.sell_rate, er.updated_at
		FROM exchange_rates er
		JOIN currencies c ON c.id = er.currency_id
		JOIN chat_groups g ON g.id = er.group_id
		WHERE er.currency_id = $1
		  AND g.type = $2
		  AND %s IS NOT NULL
	`, column)

	args := []any{currencyID, models.GroupTypeVendor}

	var rates []models.ExchangeRate
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rates, query, args...)

	logQuery(query, args, len(rates), err)

	return rates, err
}

// ExchangeRateWriteRepository upserts vendor quotes.
type ExchangeRateWriteRepository struct {
	db *sqlx.DB
}

func NewExchangeRateWriteRepository(db *sqlx.DB) *ExchangeRateWriteRepository {
	return &ExchangeRateWriteRepository{db: db}
}

// Upsert stores one quote per (group, currency). Re-sending the same payload
// leaves the table unchanged apart from updated_at.
func (r *ExchangeRateWriteRepository) Upsert(ctx context.Context, groupID int64, rate models.CurrencyRate) error {
	const query = `
		INSERT INTO exchange_rates (group_id, currency_id, buy_rate, sell_rate, updated_at)
		SELECT $1, c.id, $3, $4, NOW()
		FROM currencies c
		WHERE c.symbol = $2
		ON CONFLICT (group_id, currency_id)
		DO UPDATE SET buy_rate = EXCLUDED.buy_rate, sell_rate = EXCLUDED.sell_rate, updated_at = NOW()
	`
	args := []any{groupID, rate.Currency, rate.BuyRate, rate.SellRate}

	res, err := executor(ctx, r.db).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return mapError(err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("currency %s: %w", rate.Currency, apperrors.ErrNotFound)
	}
	return nil
}
