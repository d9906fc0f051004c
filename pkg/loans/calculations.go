// Package loans provides the loan amortization engine.
package loans

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrScheduleNotAmortizing is returned when a schedule fails to reach a zero
// balance within the safety bound.
var ErrScheduleNotAmortizing = errors.New("loan terms do not amortize")

// LoanTerms holds the inputs of a single amortization calculation.
type LoanTerms struct {
	Principal           float64
	AnnualRatePercent   float64
	TermYears           float64
	ExtraMonthlyPayment float64
}

// AmortizationRow holds the values for a given month of the schedule.
type AmortizationRow struct {
	Month            int
	Interest         float64
	Principal        float64
	ExtraPayment     float64
	TotalPayment     float64
	RemainingBalance float64
}

// Schedule is the result of an amortization calculation.
type Schedule struct {
	MonthlyPayment float64
	Rows           []AmortizationRow
}

// Empty reports whether the schedule has no rows.
func (s Schedule) Empty() bool {
	return len(s.Rows) == 0
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.MonthsPerYear / constants.PercentageMultiplier
}

// TermMonths returns the number of monthly periods in a term of years.
func TermMonths(termYears float64) float64 {
	return termYears * constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the level monthly payment for a loan using
// the standard amortization formula. A principal or term that is not positive
// yields 0.
func CalculateMonthlyPayment(principal, annualRatePercent, termYears float64) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	periodicRate := MonthlyRate(annualRatePercent)
	periods := TermMonths(termYears)
	if periodicRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / periods
	}

	// (1+r)^n - 1 without cancellation for very small rates
	growth := math.Expm1(periods * math.Log1p(periodicRate))
	return principal * periodicRate * (growth + 1) / growth
}

// CalculateInterestPayment calculates the interest accrued in one month.
func CalculateInterestPayment(balance, annualRatePercent float64) float64 {
	return balance * MonthlyRate(annualRatePercent)
}

// GenerateAmortizationSchedule produces the month-by-month payoff schedule.
//
// Terms whose monthly payment is not computable produce an empty schedule and
// no error. The final row always carries a remaining balance of exactly zero
// and a total payment equal to the prior balance plus that month's interest.
func GenerateAmortizationSchedule(terms LoanTerms) (Schedule, error) {
	payment := CalculateMonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	if !(payment > 0) {
		return Schedule{}, nil
	}

	extra := mathutil.NonNegative(terms.ExtraMonthlyPayment)
	periods := TermMonths(terms.TermYears)
	limit := int(math.Ceil(periods * constants.ScheduleSafetyFactor))
	tolerance := constants.ScheduleClosingTolerance * math.Max(1, terms.Principal)

	rows := make([]AmortizationRow, 0, initialCapacity(periods))
	balance := terms.Principal

	for month := 1; ; month++ {
		if month > limit {
			return Schedule{}, fmt.Errorf("%w: balance %.2f remains after %d months",
				ErrScheduleNotAmortizing, balance, limit)
		}

		interest := CalculateInterestPayment(balance, terms.AnnualRatePercent)
		principal := payment - interest
		reduction := payment + extra - interest

		if balance < reduction || mathutil.WithinTolerance(balance, reduction, tolerance) {
			rows = append(rows, AmortizationRow{
				Month:            month,
				Interest:         interest,
				Principal:        balance,
				ExtraPayment:     0,
				TotalPayment:     balance + interest,
				RemainingBalance: 0,
			})
			break
		}

		balance -= principal + extra
		rows = append(rows, AmortizationRow{
			Month:            month,
			Interest:         interest,
			Principal:        principal + extra,
			ExtraPayment:     extra,
			TotalPayment:     payment + extra,
			RemainingBalance: balance,
		})
	}

	return Schedule{MonthlyPayment: payment, Rows: rows}, nil
}

// initialCapacity keeps preallocation sane for absurdly long terms.
func initialCapacity(periods float64) int {
	const maxPrealloc = 1200
	if !(periods > 0) {
		return 0
	}
	if periods > maxPrealloc {
		return maxPrealloc
	}
	return int(math.Ceil(periods))
}

// AmortizationScheduleGenerator wraps the engine with logging for callers
// processing named loans.
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// Generate creates the schedule for a named loan.
func (g *AmortizationScheduleGenerator) Generate(name string, terms LoanTerms) (Schedule, error) {
	schedule, err := GenerateAmortizationSchedule(terms)
	if err != nil {
		g.logger.Warn(fmt.Sprintf("loan %s did not amortize", name),
			zap.String("op", "loans.Generate"),
			zap.Error(err),
		)
		return Schedule{}, fmt.Errorf("loan %s: %w", name, err)
	}

	if schedule.Empty() {
		g.logger.Debug(fmt.Sprintf("loan %s has no computable payment, returning empty schedule", name),
			zap.String("op", "loans.Generate"),
			zap.Float64("principal", terms.Principal),
			zap.Float64("termYears", terms.TermYears),
		)
		return schedule, nil
	}

	g.logger.Debug(fmt.Sprintf("loan %s pays off in month %d", name, len(schedule.Rows)),
		zap.String("op", "loans.Generate"),
		zap.Float64("monthlyPayment", schedule.MonthlyPayment),
		zap.Float64("extraMonthlyPayment", terms.ExtraMonthlyPayment),
	)
	return schedule, nil
}
