package models

import (
	"fmt"
	"strconv"
	"strings"
)

// CurrencyType distinguishes plain currencies from payment methods
// nested under them (e.g. PHP/GCASH).
type CurrencyType string

const (
	CurrencyTypeGeneral       CurrencyType = "general"
	CurrencyTypePaymentMethod CurrencyType = "payment_method"
)

// Currency is shared reference data read by the pricing path.
type Currency struct {
	ID       int64        `json:"id" db:"id"`
	Symbol   string       `json:"symbol" db:"symbol"`
	Type     CurrencyType `json:"type" db:"type"`
	Path     string       `json:"path" db:"path"`
	ParentID *int64       `json:"parent_id,omitempty" db:"parent_id"`
	Sequence int          `json:"sequence" db:"sequence"`
}

// CurrencyAliases maps the short forms customers type to canonical symbols.
var CurrencyAliases = map[string]string{
	"G": "GCASH",
	"M": "PAYMAYA",
}

// NormalizeSymbol uppercases a symbol and resolves known aliases.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if canonical, ok := CurrencyAliases[s]; ok {
		return canonical
	}
	return s
}

// CurrencyPath builds the hierarchical path: the id for a root currency,
// "parent/id" for a payment method.
func CurrencyPath(id int64, parentID *int64) string {
	if parentID == nil {
		return strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%d/%d", *parentID, id)
}

// Validate checks the type/parent/path invariants.
func (c Currency) Validate() error {
	if c.Symbol == "" || c.Symbol != strings.ToUpper(c.Symbol) {
		return fmt.Errorf("currency symbol must be uppercase and non-empty: %q", c.Symbol)
	}
	switch c.Type {
	case CurrencyTypeGeneral:
		if c.ParentID != nil {
			return fmt.Errorf("general currency %s cannot have a parent", c.Symbol)
		}
	case CurrencyTypePaymentMethod:
		if c.ParentID == nil {
			return fmt.Errorf("payment method %s must have a parent", c.Symbol)
		}
	default:
		return fmt.Errorf("unknown currency type %q", c.Type)
	}
	if c.Path != "" && strings.Count(c.Path, "/") > 1 {
		return fmt.Errorf("currency path %q deeper than 2", c.Path)
	}
	return nil
}
