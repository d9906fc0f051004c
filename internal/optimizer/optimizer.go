// Package optimizer searches for the smallest extra monthly payment that pays
// a loan off within a target number of months.
package optimizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/optimization"
	"go.uber.org/zap"
)

// ErrInvalidTarget is returned when a search cannot be set up for the given
// terms and target.
var ErrInvalidTarget = errors.New("invalid payoff target")

const (
	defaultMaxIterations = 100
	// searchResolution stops the bisection once the bracket is under half a cent.
	searchResolution = 0.5 / constants.DecimalPrecision
)

// Runner performs payoff-target searches.
type Runner struct {
	logger        *zap.Logger
	maxIterations int
}

type evaluation struct {
	extra    float64
	schedule loans.Schedule
}

func (e evaluation) months() int {
	return len(e.schedule.Rows)
}

// NewRunner creates a new optimizer runner.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, maxIterations: defaultMaxIterations}
}

func (r *Runner) evaluate(terms loans.LoanTerms, extra float64) (evaluation, error) {
	terms.ExtraMonthlyPayment = extra
	schedule, err := loans.GenerateAmortizationSchedule(terms)
	if err != nil {
		return evaluation{}, err
	}
	return evaluation{extra: extra, schedule: schedule}, nil
}

// MinimumExtraPayment finds the smallest extra monthly payment, in whole cents,
// for which the loan is paid off within targetMonths. The configured extra
// payment on terms is reported as the original value and otherwise ignored.
func (r *Runner) MinimumExtraPayment(name string, terms loans.LoanTerms, targetMonths int) (optimization.Summary, error) {
	summary := optimization.Summary{
		TargetName:   name,
		TargetMonths: targetMonths,
		Original:     terms.ExtraMonthlyPayment,
	}
	if targetMonths <= 0 {
		return summary, fmt.Errorf("%w: target months must be positive, got %d", ErrInvalidTarget, targetMonths)
	}

	baseline, err := r.evaluate(terms, 0)
	if err != nil {
		return summary, err
	}
	if baseline.schedule.Empty() {
		return summary, fmt.Errorf("%w: loan %s has no computable payment", ErrInvalidTarget, name)
	}

	best := baseline
	converged := true
	if baseline.months() > targetMonths {
		best, summary.Iterations, converged, err = r.search(terms, targetMonths)
		if err != nil {
			return summary, err
		}
		if !converged {
			summary.Notes = append(summary.Notes,
				fmt.Sprintf("search stopped after %d iterations before narrowing to a cent", summary.Iterations))
		}
	} else {
		summary.Notes = append(summary.Notes,
			fmt.Sprintf("scheduled payments already pay off the loan in %d months", baseline.months()))
	}

	bestTerms := terms
	bestTerms.ExtraMonthlyPayment = best.extra
	loanSummary, err := loans.Summarize(bestTerms, best.schedule)
	if err != nil {
		return summary, err
	}

	summary.Value = best.extra
	summary.PayoffMonths = best.months()
	summary.InterestSaved = loanSummary.InterestSaved
	summary.Converged = converged

	r.logger.Debug(fmt.Sprintf("loan %s pays off within %d months with %s extra per month",
		name, targetMonths, format.Currency(best.extra)),
		zap.String("op", "optimizer.MinimumExtraPayment"),
		zap.Int("iterations", summary.Iterations),
		zap.Int("payoffMonths", summary.PayoffMonths),
	)
	return summary, nil
}

// search bisects between no extra payment, which misses the target, and an
// extra payment equal to the principal, which clears the loan in the first
// month. The returned flag reports whether the bracket narrowed to
// searchResolution before maxIterations ran out.
func (r *Runner) search(terms loans.LoanTerms, targetMonths int) (evaluation, int, bool, error) {
	lower := 0.0
	upper, err := r.evaluate(terms, terms.Principal)
	if err != nil {
		return evaluation{}, 0, false, err
	}

	iterations := 0
	for upper.extra-lower > searchResolution && iterations < r.maxIterations {
		iterations++
		mid, err := r.evaluate(terms, (lower+upper.extra)/2)
		if err != nil {
			return evaluation{}, iterations, false, err
		}
		if mid.months() <= targetMonths {
			upper = mid
		} else {
			lower = mid.extra
		}
	}
	converged := upper.extra-lower <= searchResolution

	for _, candidate := range []float64{
		math.Floor(upper.extra*constants.DecimalPrecision) / constants.DecimalPrecision,
		math.Ceil(upper.extra*constants.DecimalPrecision) / constants.DecimalPrecision,
	} {
		eval, err := r.evaluate(terms, candidate)
		if err != nil {
			return evaluation{}, iterations, false, err
		}
		if eval.months() <= targetMonths {
			return eval, iterations, converged, nil
		}
	}
	return upper, iterations, converged, nil
}
