// Package pricing turns a raw vendor rate and a handling-fee rule into the
// price quoted to customers. All arithmetic is decimal.
package pricing

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-exchange-bot/internal/apperrors"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

// DefaultRoundBase is the price rounding unit used for customer quotes.
const DefaultRoundBase = 0.05

// amountPlaces is the precision of converted amounts.
const amountPlaces = 2

// ErrDivisionByZero is a fee configuration defect: a division rule with a zero value.
var ErrDivisionByZero = fmt.Errorf("%w: division by zero", apperrors.ErrArithmetic)

// Engine computes rounded prices. It is stateless apart from the rounding base
// and safe for concurrent use.
type Engine struct {
	base decimal.Decimal
}

// New creates an Engine rounding to multiples of base. A non-positive base
// falls back to DefaultRoundBase.
func New(base float64) *Engine {
	if base <= 0 {
		base = DefaultRoundBase
	}
	return &Engine{base: toDecimal(base)}
}

// ComputePrice applies the calculation rule to rate and rounds the result to
// the nearest multiple of the base, ties away from zero. An unknown rule
// leaves the rate as is.
func (e *Engine) ComputePrice(calc models.CalculationType, rate, fee float64) (float64, error) {
	r := toDecimal(rate)
	f := toDecimal(fee)

	var price decimal.Decimal
	switch calc {
	case models.CalculationAddition:
		price = r.Add(f)
	case models.CalculationSubtraction:
		price = r.Sub(f)
	case models.CalculationMultiplication:
		price = r.Mul(f)
	case models.CalculationDivision:
		if f.IsZero() {
			return 0, fmt.Errorf("compute price %v / %v: %w", rate, fee, ErrDivisionByZero)
		}
		price = r.Div(f)
	default:
		price = r
	}

	return e.round(price).InexactFloat64(), nil
}

// Convert returns what the customer receives for amount at price: a buyer
// pays amount and receives amount*price, a seller receives amount/price.
func (e *Engine) Convert(amount, price float64, op models.OperationType) (float64, error) {
	a := toDecimal(amount)
	p := toDecimal(price)

	if op == models.OperationSell {
		if p.IsZero() {
			return 0, fmt.Errorf("convert %v at %v: %w", amount, price, ErrDivisionByZero)
		}
		return a.Div(p).Round(amountPlaces).InexactFloat64(), nil
	}
	return a.Mul(p).Round(amountPlaces).InexactFloat64(), nil
}

// Base returns the rounding unit.
func (e *Engine) Base() float64 {
	return e.base.InexactFloat64()
}

func (e *Engine) round(v decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero.
	return v.Div(e.base).Round(0).Mul(e.base)
}

// toDecimal converts through the shortest string form so 56.17 stays 56.17
// instead of its binary expansion.
func toDecimal(f float64) decimal.Decimal {
	d, err := decimal.NewFromString(strconv.FormatFloat(f, 'f', -1, 64))
	if err != nil {
		return decimal.NewFromFloat(f)
	}
	return d
}
