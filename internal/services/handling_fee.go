package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=handling_fee.go -destination=handling_fee_mock_test.go -package=services

// HandlingFeeConfigReader reads fee configs with their items.
type HandlingFeeConfigReader interface {
	GetGlobal(ctx context.Context) (*models.HandlingFeeConfig, error)
	GetByID(ctx context.Context, id int64) (*models.HandlingFeeConfig, error)
	List(ctx context.Context) ([]models.HandlingFeeConfig, error)
}

// HandlingFeeConfigWriter creates and edits fee configs.
type HandlingFeeConfigWriter interface {
	Create(ctx context.Context, name string, isGlobal bool, actor string) (int64, error)
	Rename(ctx context.Context, id int64, name, actor string) error
	UpsertItem(ctx context.Context, configID int64, item models.HandlingFeeConfigItem) error
}

// HandlingFeeService administers handling fee configs.
type HandlingFeeService struct {
	reader HandlingFeeConfigReader
	writer HandlingFeeConfigWriter
	tx     TxRunner
}

func NewHandlingFeeService(reader HandlingFeeConfigReader, writer HandlingFeeConfigWriter, tx TxRunner) *HandlingFeeService {
	return &HandlingFeeService{
		reader: reader,
		writer: writer,
		tx:     tx,
	}
}

func (svc *HandlingFeeService) List(ctx context.Context) ([]models.HandlingFeeConfig, error) {
	configs, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list handling fee configs", "err", err)
	}
	return configs, err
}

func (svc *HandlingFeeService) Get(ctx context.Context, id int64) (*models.HandlingFeeConfig, error) {
	return svc.reader.GetByID(ctx, id)
}

// Create stores a config with its items. A second global config is a conflict.
func (svc *HandlingFeeService) Create(
	ctx context.Context,
	name string,
	isGlobal bool,
	items []models.HandlingFeeConfigItem,
	actor string,
) (*models.HandlingFeeConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: config name is empty", apperrors.ErrInvalidInput)
	}
	if err := validateFeeItems(items); err != nil {
		return nil, err
	}

	if isGlobal {
		existing, err := svc.reader.GetGlobal(ctx)
		if err == nil {
			return nil, fmt.Errorf("%w: global handling fee config %d already exists", apperrors.ErrConflict, existing.ID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	var id int64
	err := svc.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if id, err = svc.writer.Create(ctx, name, isGlobal, actor); err != nil {
			return err
		}
		return svc.upsertItems(ctx, id, items)
	})
	if err != nil {
		logger.Log.Errorw("failed to create handling fee config", "name", name, "global", isGlobal, "err", err)
		return nil, err
	}

	return svc.reader.GetByID(ctx, id)
}

// Rename changes a config's name.
func (svc *HandlingFeeService) Rename(ctx context.Context, id int64, name, actor string) (*models.HandlingFeeConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: config name is empty", apperrors.ErrInvalidInput)
	}
	if err := svc.writer.Rename(ctx, id, name, actor); err != nil {
		logger.Log.Errorw("failed to rename handling fee config", "id", id, "err", err)
		return nil, err
	}
	return svc.reader.GetByID(ctx, id)
}

// UpsertItems replaces the rules of the given currencies in one transaction.
func (svc *HandlingFeeService) UpsertItems(ctx context.Context, id int64, items []models.HandlingFeeConfigItem) (*models.HandlingFeeConfig, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", apperrors.ErrInvalidInput)
	}
	if err := validateFeeItems(items); err != nil {
		return nil, err
	}
	if _, err := svc.reader.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := svc.tx.WithTx(ctx, func(ctx context.Context) error {
		return svc.upsertItems(ctx, id, items)
	}); err != nil {
		logger.Log.Errorw("failed to upsert handling fee items", "id", id, "err", err)
		return nil, err
	}
	return svc.reader.GetByID(ctx, id)
}

func (svc *HandlingFeeService) upsertItems(ctx context.Context, configID int64, items []models.HandlingFeeConfigItem) error {
	for _, item := range items {
		item.Currency = models.NormalizeSymbol(item.Currency)
		if err := svc.writer.UpsertItem(ctx, configID, item); err != nil {
			return fmt.Errorf("item %s: %w", item.Currency, err)
		}
	}
	return nil
}

// validateFeeItems rejects unknown rules, duplicate currencies and zero
// divisors, which would fail every quote priced with them.
func validateFeeItems(items []models.HandlingFeeConfigItem) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		symbol := models.NormalizeSymbol(item.Currency)
		if symbol == "" {
			return fmt.Errorf("%w: item without currency", apperrors.ErrInvalidInput)
		}
		if seen[symbol] {
			return fmt.Errorf("%w: duplicate item for %s", apperrors.ErrInvalidInput, symbol)
		}
		seen[symbol] = true

		for _, rule := range []struct {
			calc  models.CalculationType
			value float64
		}{
			{item.BuyCalculationType, item.BuyValue},
			{item.SellCalculationType, item.SellValue},
		} {
			if !rule.calc.Valid() {
				return fmt.Errorf("%w: %s calculation type %q", apperrors.ErrInvalidInput, symbol, rule.calc)
			}
			if rule.calc == models.CalculationDivision && rule.value == 0 {
				return fmt.Errorf("%w: %s divides by zero", apperrors.ErrInvalidInput, symbol)
			}
		}
	}
	return nil
}
