// Package validation provides boundary validation for user-supplied input.
package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// ErrInvalidLoanTerms is wrapped by every loan terms validation failure.
var ErrInvalidLoanTerms = errors.New("invalid loan terms")

// ValidateLoanTerms rejects terms that the amortization engine would only
// degrade on. Callers at the API and CLI boundary use it so that malformed
// input is reported instead of silently producing an empty schedule.
func ValidateLoanTerms(terms loans.LoanTerms) error {
	if !mathutil.IsFinite(terms.Principal) || terms.Principal <= 0 || terms.Principal > constants.MaxPrincipal {
		return fmt.Errorf("%w: principal must be greater than 0 and at most %g, got %v",
			ErrInvalidLoanTerms, constants.MaxPrincipal, terms.Principal)
	}
	if !mathutil.IsFinite(terms.AnnualRatePercent) || terms.AnnualRatePercent < 0 ||
		terms.AnnualRatePercent > constants.MaxAnnualRatePercent {
		return fmt.Errorf("%w: annual rate must be between 0 and %.0f percent, got %v",
			ErrInvalidLoanTerms, constants.MaxAnnualRatePercent, terms.AnnualRatePercent)
	}
	if !mathutil.IsFinite(terms.TermYears) || terms.TermYears <= 0 || terms.TermYears > constants.MaxTermYears {
		return fmt.Errorf("%w: term must be greater than 0 and at most %d years, got %v",
			ErrInvalidLoanTerms, constants.MaxTermYears, terms.TermYears)
	}
	if !mathutil.IsFinite(terms.ExtraMonthlyPayment) || terms.ExtraMonthlyPayment < 0 {
		return fmt.Errorf("%w: extra monthly payment must not be negative, got %v",
			ErrInvalidLoanTerms, terms.ExtraMonthlyPayment)
	}
	return nil
}

// LoanConfig is the subset of a configured loan needed for validation.
type LoanConfig struct {
	Name  string
	Terms loans.LoanTerms
}

// ValidateLoans returns warnings for a list of configured loans: missing or
// duplicate names, invalid terms and extra payments that exceed the principal.
func ValidateLoans(configured []LoanConfig) []string {
	var warnings []string

	if len(configured) == 0 {
		return []string{"No loans configured"}
	}

	seen := make(map[string]struct{}, len(configured))
	for i, loan := range configured {
		label := loan.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Loan %s has no name", label))
		} else if _, duplicate := seen[loan.Name]; duplicate {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' is configured more than once", loan.Name))
		}
		seen[loan.Name] = struct{}{}

		if err := ValidateLoanTerms(loan.Terms); err != nil {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' will produce an empty schedule: %v", label, err))
			continue
		}
		if loan.Terms.ExtraMonthlyPayment >= loan.Terms.Principal {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' extra monthly payment %.2f pays off the principal %.2f in the first month",
				label, loan.Terms.ExtraMonthlyPayment, loan.Terms.Principal))
		}
	}

	return warnings
}
