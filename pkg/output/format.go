// Package output provides utilities for formatting and displaying amortization schedules.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result pairs a named loan with its schedule and summary.
type Result struct {
	Name     string
	Terms    loans.LoanTerms
	Schedule loans.Schedule
	Summary  loans.ScheduleSummary
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Amortization schedule for %s ---\n", result.Name)
		if result.Schedule.Empty() {
			_, _ = fmt.Fprintf(w, "No payment is computable for these terms\n")
		} else {
			_, _ = p.Fprintf(w, "Monthly payment: $%.2f\n", format.Money(result.Schedule.MonthlyPayment))
			_, _ = fmt.Fprintf(w, "Month | Interest | Principal | Extra | Payment | Balance\n")
			_, _ = fmt.Fprintf(w, "_____ | ________ | _________ | _____ | _______ | _______\n")
			for _, row := range result.Schedule.Rows {
				_, _ = p.Fprintf(w, "%d | $%.2f | $%.2f | $%.2f | $%.2f | $%.2f\n",
					row.Month,
					format.Money(row.Interest),
					format.Money(row.Principal),
					format.Money(row.ExtraPayment),
					format.Money(row.TotalPayment),
					format.Money(row.RemainingBalance),
				)
			}
			_, _ = fmt.Fprintln(w, SummaryLine(result.Summary))
		}
		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// SummaryLine describes a schedule summary in one sentence.
func SummaryLine(summary loans.ScheduleSummary) string {
	line := fmt.Sprintf("Total interest: %s, total paid: %s, paid off in %d months",
		format.Currency(summary.TotalInterest),
		format.Currency(summary.TotalPaid),
		summary.PayoffMonths,
	)
	if summary.MonthsSaved > 0 {
		line += fmt.Sprintf(" (%d months early, %s interest saved)",
			summary.MonthsSaved, format.Currency(summary.InterestSaved))
	}
	return line
}

// OptimizationLine describes a payoff-target search result in one sentence.
func OptimizationLine(summary optimization.Summary) string {
	if mathutil.IsZero(summary.Value) {
		return fmt.Sprintf("%s already pays off within %d months (%d months scheduled)",
			summary.TargetName, summary.TargetMonths, summary.PayoffMonths)
	}
	return fmt.Sprintf("%s pays off in %d months with %s extra per month (target %d months, %s interest saved)",
		summary.TargetName,
		summary.PayoffMonths,
		format.Currency(summary.Value),
		summary.TargetMonths,
		format.Currency(summary.InterestSaved),
	)
}

// CsvFormat writes in comma-separated value format.
func CsvFormat(w io.Writer, results []Result) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"loan", "month", "interest", "principal", "extra", "payment", "balance"}); err != nil {
		return err
	}
	for _, result := range results {
		for _, row := range result.Schedule.Rows {
			record := []string{
				result.Name,
				strconv.Itoa(row.Month),
				format.Amount(row.Interest),
				format.Amount(row.Principal),
				format.Amount(row.ExtraPayment),
				format.Amount(row.TotalPayment),
				format.Amount(row.RemainingBalance),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of results.
func CsvString(results []Result) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return "", err
	}
	return buf.String(), nil
}
