package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MoneyFromCents converts a minor-unit amount into a display Money value.
// decimal.New with exponent -2 is exact, there is no float in the path.
func MoneyFromCents(cents int64, unit currency.Unit) Money {
	return Money{
		Amount:   decimal.New(cents, -2),
		Currency: unit,
	}
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency.String()
}
