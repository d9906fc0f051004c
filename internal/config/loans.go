package config

import (
	"github.com/iwvelando/loan-calculator/internal/optimizer"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/optimization"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"go.uber.org/zap"
)

// Loan indicates a loan and its parameters.
type Loan struct {
	Name                string  `yaml:"name"`
	Principal           float64 `yaml:"principal"`
	AnnualRatePercent   float64 `yaml:"annualRatePercent"`
	TermYears           float64 `yaml:"termYears"`
	ExtraMonthlyPayment float64 `yaml:"extraMonthlyPayment,omitempty"`
	// TargetPayoffMonths, when set, requests the smallest extra payment that
	// clears the loan within this many months.
	TargetPayoffMonths int `yaml:"targetPayoffMonths,omitempty"`
}

// Terms converts the configured loan into engine input.
func (loan Loan) Terms() loans.LoanTerms {
	return loans.LoanTerms{
		Principal:           loan.Principal,
		AnnualRatePercent:   loan.AnnualRatePercent,
		TermYears:           loan.TermYears,
		ExtraMonthlyPayment: loan.ExtraMonthlyPayment,
	}
}

// ProcessLoans iterates through all loans and produces the amortization
// schedules and their summaries.
func (conf *Configuration) ProcessLoans(logger *zap.Logger) ([]output.Result, error) {
	generator := loans.NewAmortizationScheduleGenerator(logger)

	results := make([]output.Result, 0, len(conf.Loans))
	for _, loan := range conf.Loans {
		result, err := ProcessLoan(generator, loan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// ProcessLoan computes the schedule and summary for one loan.
func ProcessLoan(generator *loans.AmortizationScheduleGenerator, loan Loan) (output.Result, error) {
	terms := loan.Terms()
	schedule, err := generator.Generate(loan.Name, terms)
	if err != nil {
		return output.Result{}, err
	}

	summary, err := loans.Summarize(terms, schedule)
	if err != nil {
		return output.Result{}, err
	}

	return output.Result{Name: loan.Name, Terms: terms, Schedule: schedule, Summary: summary}, nil
}

// OptimizeLoans runs the payoff-target search for every loan that sets
// TargetPayoffMonths.
func (conf *Configuration) OptimizeLoans(logger *zap.Logger) ([]optimization.Summary, error) {
	runner := optimizer.NewRunner(logger)

	var summaries []optimization.Summary
	for _, loan := range conf.Loans {
		if loan.TargetPayoffMonths <= 0 {
			continue
		}
		summary, err := runner.MinimumExtraPayment(loan.Name, loan.Terms(), loan.TargetPayoffMonths)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
