package output

import (
	"github.com/rpgo/pension-projector/internal/domain"
	"github.com/rpgo/pension-projector/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole US dollars with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatCurrencyCents formats a decimal as US dollars with cents.
func FormatCurrencyCents(amount decimal.Decimal) string {
	m := money.NewMoneyFromDecimal(amount)
	if amount.Round(2).IsNegative() {
		return "-$" + money.NewMoneyFromDecimal(amount.Neg()).Cents()
	}
	return "$" + m.Cents()
}

// FormatPercentage formats a percentage value (7 means 7%) with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.06) as a percentage.
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Shift(2)) }

// ChartSeries returns the x labels (1..n) and the balances rounded to cents,
// the shape the line charts plot.
func ChartSeries(result *domain.ProjectionResult) ([]int, []string) {
	labels := make([]int, len(result.YearlyBalances))
	data := make([]string, len(result.YearlyBalances))
	for i, yb := range result.YearlyBalances {
		labels[i] = yb.Year
		data[i] = yb.Balance.StringFixed(2)
	}
	return labels, data
}
