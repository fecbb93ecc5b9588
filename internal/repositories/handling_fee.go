package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

const feeItemColumns = `
	i.id, i.config_id, i.currency_id, c.symbol AS currency,
	i.buy_calculation_type, i.buy_value, i.sell_calculation_type, i.sell_value
`

// HandlingFeeReadRepository reads fee configs and items.
type HandlingFeeReadRepository struct {
	db *sqlx.DB
}

func NewHandlingFeeReadRepository(db *sqlx.DB) *HandlingFeeReadRepository {
	return &HandlingFeeReadRepository{db: db}
}

// GetGroupItem returns the item for currencyID under the config assigned to groupID.
func (r *HandlingFeeReadRepository) GetGroupItem(ctx context.Context, groupID, currencyID int64) (*models.HandlingFeeConfigItem, error) {
	query := `SELECT ` + feeItemColumns + `
		FROM chat_groups g
		JOIN handling_fee_config_items i ON i.config_id = g.handling_fee_config_id
		JOIN currencies c ON c.id = i.currency_id
		WHERE g.id = $1 AND i.currency_id = $2
	`
	return r.getItem(ctx, query, groupID, currencyID)
}

// GetGlobalItem returns the item for currencyID under the global config.
func (r *HandlingFeeReadRepository) GetGlobalItem(ctx context.Context, currencyID int64) (*models.HandlingFeeConfigItem, error) {
	query := `SELECT ` + feeItemColumns + `
		FROM handling_fee_configs f
		JOIN handling_fee_config_items i ON i.config_id = f.id
		JOIN currencies c ON c.id = i.currency_id
		WHERE f.is_global AND i.currency_id = $1
	`
	return r.getItem(ctx, query, currencyID)
}

func (r *HandlingFeeReadRepository) getItem(ctx context.Context, query string, args ...any) (*models.HandlingFeeConfigItem, error) {
	var item models.HandlingFeeConfigItem
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &item, query, args...)

	logQuery(query, args, item.ID, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &item, nil
}

// GetGlobal returns the global config without items.
func (r *HandlingFeeReadRepository) GetGlobal(ctx context.Context) (*models.HandlingFeeConfig, error) {
	const query = `
		SELECT id, name, is_global, created_by, updated_by, created_at, updated_at
		FROM handling_fee_configs
		WHERE is_global
	`

	var cfg models.HandlingFeeConfig
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &cfg, query)

	logQuery(query, nil, cfg.ID, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &cfg, nil
}

// GetByID returns a config with its items.
func (r *HandlingFeeReadRepository) GetByID(ctx context.Context, id int64) (*models.HandlingFeeConfig, error) {
	const query = `
		SELECT id, name, is_global, created_by, updated_by, created_at, updated_at
		FROM handling_fee_configs
		WHERE id = $1
	`

	var cfg models.HandlingFeeConfig
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &cfg, query, id)

	logQuery(query, []any{id}, cfg.ID, err)

	if err != nil {
		return nil, mapError(err)
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg.Items = items
	return &cfg, nil
}

// List returns all configs without items.
func (r *HandlingFeeReadRepository) List(ctx context.Context) ([]models.HandlingFeeConfig, error) {
	const query = `
		SELECT id, name, is_global, created_by, updated_by, created_at, updated_at
		FROM handling_fee_configs
		ORDER BY is_global DESC, id
	`

	var cfgs []models.HandlingFeeConfig
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &cfgs, query)

	logQuery(query, nil, len(cfgs), err)

	return cfgs, err
}

func (r *HandlingFeeReadRepository) ListItems(ctx context.Context, configID int64) ([]models.HandlingFeeConfigItem, error) {
	query := `SELECT ` + feeItemColumns + `
		FROM handling_fee_config_items i
		JOIN currencies c ON c.id = i.currency_id
		WHERE i.config_id = $1
		ORDER BY c.sequence, c.symbol
	`

	var items []models.HandlingFeeConfigItem
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &items, query, configID)

	logQuery(query, []any{configID}, len(items), err)

	return items, err
}

// HandlingFeeWriteRepository creates and updates fee configs.
type HandlingFeeWriteRepository struct {
	db *sqlx.DB
}

func NewHandlingFeeWriteRepository(db *sqlx.DB) *HandlingFeeWriteRepository {
	return &HandlingFeeWriteRepository{db: db}
}

// Create inserts a config and returns its id. A second global config
// violates uq_handling_fee_configs_global and surfaces as a conflict.
func (r *HandlingFeeWriteRepository) Create(ctx context.Context, name string, isGlobal bool, actor string) (int64, error) {
	const query = `
		INSERT INTO handling_fee_configs (name, is_global, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $3, NOW(), NOW())
		RETURNING id
	`
	args := []any{name, isGlobal, actor}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, query, args...)

	logQuery(query, args, id, err)

	return id, mapError(err)
}

// Rename changes the config name.
func (r *HandlingFeeWriteRepository) Rename(ctx context.Context, id int64, name, actor string) error {
	const query = `
		UPDATE handling_fee_configs
		SET name = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`
	args := []any{id, name, actor}

	var updated int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &updated, query, args...)

	logQuery(query, args, updated, err)

	return mapError(err)
}

// UpsertItem stores the rules for one currency, resolved by symbol.
func (r *HandlingFeeWriteRepository) UpsertItem(ctx context.Context, configID int64, item models.HandlingFeeConfigItem) error {
	const query = `
		INSERT INTO handling_fee_config_items
			(config_id, currency_id, buy_calculation_type, buy_value, sell_calculation_type, sell_value)
		SELECT $1, c.id, $3, $4, $5, $6
		FROM currencies c
		WHERE c.symbol = $2
		ON CONFLICT (config_id, currency_id)
		DO UPDATE SET buy_calculation_type = EXCLUDED.buy_calculation_type,
		              buy_value = EXCLUDED.buy_value,
		              sell_calculation_type = EXCLUDED.sell_calculation_type,
		              sell_value = EXCLUDED.sell_value
		RETURNING id
	`
	args := []any{configID, item.Currency, item.BuyCalculationType, item.BuyValue, item.SellCalculationType, item.SellValue}

	var id int64
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, query, args...)

	logQuery(query, args, id, err)

	return mapError(err)
}
