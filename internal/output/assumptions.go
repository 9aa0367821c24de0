package output

import (
	"fmt"

	"github.com/rpgo/pension-projector/internal/domain"
)

// GenerateAssumptions lists the modeling assumptions behind a report.
func GenerateAssumptions(a domain.Assumptions) []string {
	a = a.WithDefaults()
	lines := []string{
		fmt.Sprintf("Contributions stop and the projection ends at age %d", a.RetirementAge),
		"Each year's contribution is added before that year's net return is applied",
		"Net return = investment return - expense ratio, compounded annually",
	}
	switch a.IncomeMethod {
	case domain.IncomeMethodFourPercent:
		lines = append(lines, fmt.Sprintf("Estimated income = %s of the final balance per year", FormatRate(a.WithdrawalRate)))
	default:
		lines = append(lines, fmt.Sprintf("Estimated income = final balance / %s (annuity factor)", a.AnnuityFactor.String()))
	}
	return append(lines, "Figures are nominal; no inflation adjustment or taxes")
}
