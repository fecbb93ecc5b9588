package services

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=exchange_rate.go -destination=exchange_rate_mock_test.go -package=services

// ExchangeRateGroupReader lists the quotes of one group.
type ExchangeRateGroupReader interface {
	ListByGroup(ctx context.Context, groupID int64) ([]models.ExchangeRate, error)
}

// ExchangeRateWriter upserts a group's quote for one currency.
type ExchangeRateWriter interface {
	Upsert(ctx context.Context, groupID int64, rate models.CurrencyRate) error
}

// GroupGetter loads a chat group by id.
type GroupGetter interface {
	GetByID(ctx context.Context, id int64) (*models.ChatGroup, error)
}

// ExchangeRateService serves the vendor rate administration endpoints.
type ExchangeRateService struct {
	reader ExchangeRateGroupReader
	writer ExchangeRateWriter
	groups GroupGetter
	tx     TxRunner
}

func NewExchangeRateService(reader ExchangeRateGroupReader, writer ExchangeRateWriter, groups GroupGetter, tx TxRunner) *ExchangeRateService {
	return &ExchangeRateService{
		reader: reader,
		writer: writer,
		groups: groups,
		tx:     tx,
	}
}

// ListByGroup returns a group's rates or ErrNotFound when it has none.
func (svc *ExchangeRateService) ListByGroup(ctx context.Context, groupID int64) ([]models.ExchangeRate, error) {
	rates, err := svc.reader.ListByGroup(ctx, groupID)
	if err != nil {
		logger.Log.Errorw("failed to list exchange rates", "group_id", groupID, "err", err)
		return nil, err
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("rates of group %d: %w", groupID, apperrors.ErrNotFound)
	}
	return rates, nil
}

// UpsertRates stores a vendor group's quotes atomically. Replaying the same
// payload leaves the stored rates unchanged.
func (svc *ExchangeRateService) UpsertRates(ctx context.Context, groupID int64, rates []models.CurrencyRate) error {
	if len(rates) == 0 {
		return fmt.Errorf("%w: no rates", apperrors.ErrInvalidInput)
	}
	for i := range rates {
		rates[i].Currency = models.NormalizeSymbol(rates[i].Currency)
		if err := validateRate(rates[i]); err != nil {
			return err
		}
	}

	group, err := svc.groups.GetByID(ctx, groupID)
	if err != nil {
		logger.Log.Errorw("failed to get chat group", "group_id", groupID, "err", err)
		return err
	}
	if group.Type != models.GroupTypeVendor {
		return fmt.Errorf("%w: group %d is not a vendor group", apperrors.ErrInvalidInput, groupID)
	}

	err = svc.tx.WithTx(ctx, func(ctx context.Context) error {
		for _, rate := range rates {
			if err := svc.writer.Upsert(ctx, groupID, rate); err != nil {
				return fmt.Errorf("rate %s: %w", rate.Currency, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to upsert exchange rates", "group_id", groupID, "err", err)
	}
	return err
}

func validateRate(r models.CurrencyRate) error {
	if r.Currency == "" {
		return fmt.Errorf("%w: rate without currency", apperrors.ErrInvalidInput)
	}
	if r.BuyRate == nil && r.SellRate == nil {
		return fmt.Errorf("%w: %s has neither buy nor sell rate", apperrors.ErrInvalidInput, r.Currency)
	}
	if (r.BuyRate != nil && *r.BuyRate <= 0) || (r.SellRate != nil && *r.SellRate <= 0) {
		return fmt.Errorf("%w: %s rates must be positive", apperrors.ErrInvalidInput, r.Currency)
	}
	return nil
}
