package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=resolver.go -destination=resolver_mock_test.go -package=services

// CurrencyReader resolves canonical currency symbols.
type CurrencyReader interface {
	GetBySymbol(ctx context.Context, symbol string) (*models.Currency, error)
}

// ExchangeRateQuoteReader lists vendor quotes for one side of a currency.
type ExchangeRateQuoteReader interface {
	ListQuotes(ctx context.Context, currencyID int64, op models.OperationType) ([]models.ExchangeRate, error)
}

// HandlingFeeItemReader reads fee items scoped to a group or to the global config.
type HandlingFeeItemReader interface {
	GetGroupItem(ctx context.Context, groupID, currencyID int64) (*models.HandlingFeeConfigItem, error)
	GetGlobalItem(ctx context.Context, currencyID int64) (*models.HandlingFeeConfigItem, error)
}

// PriceComputer applies a fee rule to a raw rate.
type PriceComputer interface {
	ComputePrice(calc models.CalculationType, rate, fee float64) (float64, error)
}

// Preference says which end of the quoted range favours the customer.
type Preference string

const (
	PreferMin Preference = "min"
	PreferMax Preference = "max"
)

// ParsePreference validates a configured preference.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(s); p {
	case PreferMin, PreferMax:
		return p, nil
	}
	return "", fmt.Errorf("%w: preference must be min or max, got %q", apperrors.ErrInvalidInput, s)
}

// ResolverService picks the vendor rate and the handling fee for a quote.
type ResolverService struct {
	currencies CurrencyReader
	rates      ExchangeRateQuoteReader
	fees       HandlingFeeItemReader
	pricer     PriceComputer
	buyPref    Preference
	sellPref   Preference
}

func NewResolverService(
	currencies CurrencyReader,
	rates ExchangeRateQuoteReader,
	fees HandlingFeeItemReader,
	pricer PriceComputer,
	buyPref, sellPref Preference,
) *ResolverService {
	return &ResolverService{
		currencies: currencies,
		rates:      rates,
		fees:       fees,
		pricer:     pricer,
		buyPref:    buyPref,
		sellPref:   sellPref,
	}
}

// SelectOptimal returns the quote most favourable under pref for the side
// used by op. Equal rates resolve to the smallest group id. Quotes without
// that side are skipped; nil means nothing qualifies.
func SelectOptimal(quotes []models.ExchangeRate, op models.OperationType, pref Preference) *models.ExchangeRate {
	var best *models.ExchangeRate
	for i := range quotes {
		q := &quotes[i]
		rate := q.RateFor(op)
		if rate == nil {
			continue
		}
		if best == nil {
			best = q
			continue
		}
		current := *best.RateFor(op)
		switch {
		case *rate == current && q.GroupID < best.GroupID:
			best = q
		case pref == PreferMin && *rate < current:
			best = q
		case pref == PreferMax && *rate > current:
			best = q
		}
	}
	return best
}

func (svc *ResolverService) preference(op models.OperationType) Preference {
	if op == models.OperationSell {
		return svc.sellPref
	}
	return svc.buyPref
}

// GetOptimalExchangeRate returns the best vendor quote for a currency symbol,
// or nil when the currency is unknown or nobody quotes that side.
func (svc *ResolverService) GetOptimalExchangeRate(ctx context.Context, symbol string, op models.OperationType) (*models.ExchangeRate, error) {
	currency, err := svc.lookupCurrency(ctx, symbol)
	if err != nil || currency == nil {
		return nil, err
	}
	return svc.optimalFor(ctx, currency.ID, op)
}

func (svc *ResolverService) optimalFor(ctx context.Context, currencyID int64, op models.OperationType) (*models.ExchangeRate, error) {
	quotes, err := svc.rates.ListQuotes(ctx, currencyID, op)
	if err != nil {
		logger.Log.Errorw("failed to list vendor quotes", "currency_id", currencyID, "operation", op, "err", err)
		return nil, err
	}
	return SelectOptimal(quotes, op, svc.preference(op)), nil
}

// GetApplicableFee returns the group's fee item for the currency, falling back
// to the global config. nil means no fee can be determined.
func (svc *ResolverService) GetApplicableFee(ctx context.Context, groupID, currencyID int64) (*models.HandlingFeeConfigItem, error) {
	item, err := svc.fees.GetGroupItem(ctx, groupID, currencyID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Log.Errorw("failed to get group fee item", "group_id", groupID, "currency_id", currencyID, "err", err)
		return nil, err
	}

	item, err = svc.fees.GetGlobalItem(ctx, currencyID)
	if err == nil {
		return item, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	logger.Log.Errorw("failed to get global fee item", "currency_id", currencyID, "err", err)
	return nil, err
}

// Quote prices a currency for a customer group. It returns nil when no rate
// or no fee is available. A broken fee rule surfaces as ErrArithmetic.
func (svc *ResolverService) Quote(ctx context.Context, groupID int64, symbol string, op models.OperationType) (*models.Quote, error) {
	currency, err := svc.lookupCurrency(ctx, symbol)
	if err != nil || currency == nil {
		return nil, err
	}

	rate, err := svc.optimalFor(ctx, currency.ID, op)
	if err != nil || rate == nil {
		return nil, err
	}

	fee, err := svc.GetApplicableFee(ctx, groupID, currency.ID)
	if err != nil || fee == nil {
		return nil, err
	}

	raw := *rate.RateFor(op)
	calc, value := fee.RuleFor(op)
	price, err := svc.pricer.ComputePrice(calc, raw, value)
	if err != nil {
		logger.Log.Errorw("handling fee rule cannot be applied",
			"group_id", groupID, "currency", currency.Symbol, "operation", op,
			"calculation_type", calc, "value", value, "err", err)
		return nil, err
	}

	return &models.Quote{
		Currency:      currency.Symbol,
		Operation:     op,
		VendorGroupID: rate.GroupID,
		OriginalRate:  raw,
		Price:         price,
	}, nil
}

func (svc *ResolverService) lookupCurrency(ctx context.Context, symbol string) (*models.Currency, error) {
	currency, err := svc.currencies.GetBySymbol(ctx, models.NormalizeSymbol(symbol))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("failed to get currency", "symbol", symbol, "err", err)
		return nil, err
	}
	return currency, nil
}
