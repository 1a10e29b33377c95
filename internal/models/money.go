package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MoneyPlaces is the scale of every stored amount.
const MoneyPlaces = 2

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds d half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Percent returns pct percent of d, rounded to cents.
func Percent(d, pct decimal.Decimal) decimal.Decimal {
	return RoundMoney(d.Mul(pct).Div(hundred))
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// FormatDate renders d in the wire format.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}
