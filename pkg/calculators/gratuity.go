package calculators

const (
	gratuityDaysPerMonth         = 15
	gratuityWorkingDaysCovered   = 26
	gratuityWorkingDaysUncovered = 30
	gratuityMinimumYears         = 5
	gratuityRoundUpAfterMonths   = 6

	// GratuityCeiling is the statutory cap on gratuity paid under the Act.
	GratuityCeiling = 2000000.0
)

// GratuityResult is the outcome of CalculateGratuity.
type GratuityResult struct {
	ServiceYears int     `json:"serviceYears"`
	Eligible     bool    `json:"eligible"`
	Amount       float64 `json:"amount"`
	Capped       bool    `json:"capped"`
}

// CalculateGratuity computes the gratuity owed for a period of service.
//
// Employees covered by the Payment of Gratuity Act earn 15 days of wages per
// year of service on a 26-day month, with a trailing part year of more than
// six months counted as a full year. Others earn 15 days on a 30-day month for
// completed years only. Fewer than five completed years earn nothing.
func CalculateGratuity(lastDrawnSalary float64, years, months int, covered bool) (GratuityResult, error) {
	if err := requirePositive("last drawn salary", lastDrawnSalary); err != nil {
		return GratuityResult{}, err
	}
	if years < 0 {
		return GratuityResult{}, invalid("years of service must not be negative, got %d", years)
	}
	if months < 0 || months > 11 {
		return GratuityResult{}, invalid("months must be between 0 and 11, got %d", months)
	}

	if years < gratuityMinimumYears {
		return GratuityResult{ServiceYears: years}, nil
	}

	serviceYears := years
	divisor := float64(gratuityWorkingDaysUncovered)
	if covered {
		divisor = gratuityWorkingDaysCovered
		if months > gratuityRoundUpAfterMonths {
			serviceYears++
		}
	}

	amount := lastDrawnSalary * gratuityDaysPerMonth * float64(serviceYears) / divisor
	result := GratuityResult{ServiceYears: serviceYears, Eligible: true, Amount: amount}
	if covered && amount > GratuityCeiling {
		result.Amount = GratuityCeiling
		result.Capped = true
	}
	return result, nil
}
