package models

import "time"

// CalculationType is the arithmetic applied between a raw rate and a fee value.
type CalculationType string

const (
	CalculationAddition       CalculationType = "addition"
	CalculationSubtraction    CalculationType = "subtraction"
	CalculationMultiplication CalculationType = "multiplication"
	CalculationDivision       CalculationType = "division"
)

// Valid reports whether t is one of the known calculation types.
func (t CalculationType) Valid() bool {
	switch t {
	case CalculationAddition, CalculationSubtraction, CalculationMultiplication, CalculationDivision:
		return true
	}
	return false
}

// HandlingFeeConfig groups per-currency fee items. At most one config is global.
type HandlingFeeConfig struct {
	ID        int64                   `json:"id" db:"id"`
	Name      string                  `json:"name" db:"name"`
	IsGlobal  bool                    `json:"is_global" db:"is_global"`
	Items     []HandlingFeeConfigItem `json:"items,omitempty" db:"-"`
	CreatedBy string                  `json:"created_by" db:"created_by"`
	UpdatedBy string                  `json:"updated_by" db:"updated_by"`
	CreatedAt time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt time.Time               `json:"updated_at" db:"updated_at"`
}

// HandlingFeeConfigItem holds independent buy and sell rules for one currency.
type HandlingFeeConfigItem struct {
	ID                  int64           `json:"id" db:"id"`
	ConfigID            int64           `json:"config_id" db:"config_id"`
	CurrencyID          int64           `json:"currency_id" db:"currency_id"`
	Currency            string          `json:"currency" db:"currency"`
	BuyCalculationType  CalculationType `json:"buy_calculation_type" db:"buy_calculation_type"`
	BuyValue            float64         `json:"buy_value" db:"buy_value"`
	SellCalculationType CalculationType `json:"sell_calculation_type" db:"sell_calculation_type"`
	SellValue           float64         `json:"sell_value" db:"sell_value"`
}

// RuleFor returns the calculation type and value for the given operation.
func (i HandlingFeeConfigItem) RuleFor(op OperationType) (CalculationType, float64) {
	if op == OperationSell {
		return i.SellCalculationType, i.SellValue
	}
	return i.BuyCalculationType, i.BuyValue
}
