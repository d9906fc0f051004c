package loans

import "math"

// ScheduleSummary aggregates a schedule and compares it against paying only
// the level monthly payment.
type ScheduleSummary struct {
	MonthlyPayment  float64
	TotalInterest   float64
	TotalPrincipal  float64
	TotalExtra      float64
	TotalPaid       float64
	PayoffMonths    int
	ScheduledMonths int
	MonthsSaved     int
	InterestSaved   float64
}

// Totals sums the interest, principal, extra and cash columns of rows.
func Totals(rows []AmortizationRow) (interest, principal, extra, paid float64) {
	for _, row := range rows {
		interest += row.Interest
		principal += row.Principal
		extra += row.ExtraPayment
		paid += row.TotalPayment
	}
	return interest, principal, extra, paid
}

// Summarize builds the summary of a schedule generated from terms. When the
// terms carry an extra payment the baseline schedule without it is generated
// to report the months and interest saved.
func Summarize(terms LoanTerms, schedule Schedule) (ScheduleSummary, error) {
	if schedule.Empty() {
		return ScheduleSummary{}, nil
	}

	summary := ScheduleSummary{
		MonthlyPayment:  schedule.MonthlyPayment,
		PayoffMonths:    len(schedule.Rows),
		ScheduledMonths: int(math.Ceil(TermMonths(terms.TermYears))),
	}
	summary.TotalInterest, summary.TotalPrincipal, summary.TotalExtra, summary.TotalPaid = Totals(schedule.Rows)

	if terms.ExtraMonthlyPayment <= 0 {
		summary.ScheduledMonths = summary.PayoffMonths
		return summary, nil
	}

	baselineTerms := terms
	baselineTerms.ExtraMonthlyPayment = 0
	baseline, err := GenerateAmortizationSchedule(baselineTerms)
	if err != nil {
		return ScheduleSummary{}, err
	}

	baselineInterest, _, _, _ := Totals(baseline.Rows)
	summary.ScheduledMonths = len(baseline.Rows)
	summary.MonthsSaved = len(baseline.Rows) - summary.PayoffMonths
	summary.InterestSaved = baselineInterest - summary.TotalInterest
	return summary, nil
}
