package utils

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency formata valores monetários para exibição (ex: $12,345.67, -$1.25)
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}

	return sign + "$" + humanize.FormatFloat("#,###.##", rounded.Abs().InexactFloat64())
}

// FormatPercentage formata um percentual já arredondado (ex: 12.5%)
func FormatPercentage(percentage decimal.Decimal) string {
	return percentage.Round(2).String() + "%"
}
