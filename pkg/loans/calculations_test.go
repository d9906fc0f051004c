package loans

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const epsilon = 1e-6

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		termYears         float64
		expectedRange     []float64 // [min, max] expected range
	}{
		{
			name:              "Standard 30-year mortgage",
			principal:         100000,
			annualRatePercent: 6.0,
			termYears:         30,
			expectedRange:     []float64{599.55, 599.56}, // 599.5505
		},
		{
			name:              "5-year car loan",
			principal:         20000,
			annualRatePercent: 4.0,
			termYears:         5,
			expectedRange:     []float64{360, 380}, // Around $368
		},
		{
			name:              "High interest loan",
			principal:         10000,
			annualRatePercent: 18.0,
			termYears:         3,
			expectedRange:     []float64{361.52, 361.53},
		},
		{
			name:              "Fractional term",
			principal:         5000,
			annualRatePercent: 7.0,
			termYears:         2.5,
			expectedRange:     []float64{182.15, 182.17},
		},
		{
			name:              "Zero principal",
			principal:         0,
			annualRatePercent: 5.0,
			termYears:         5,
			expectedRange:     []float64{0, 0},
		},
		{
			name:              "Negative principal",
			principal:         -1000,
			annualRatePercent: 5.0,
			termYears:         5,
			expectedRange:     []float64{0, 0},
		},
		{
			name:              "Zero term",
			principal:         1000,
			annualRatePercent: 5.0,
			termYears:         0,
			expectedRange:     []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualRatePercent, tt.termYears)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateMonthlyPaymentZeroInterestIsLinear(t *testing.T) {
	tests := []struct {
		principal float64
		termYears float64
	}{
		{12000, 1},
		{10000, 3},
		{250000, 30},
		{999.99, 0.5},
	}

	for _, tt := range tests {
		result := CalculateMonthlyPayment(tt.principal, 0, tt.termYears)
		expected := tt.principal / (tt.termYears * 12)
		if result != expected {
			t.Errorf("CalculateMonthlyPayment(%v, 0, %v) = %v, expected exactly %v",
				tt.principal, tt.termYears, result, expected)
		}
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name              string
		balance           float64
		annualRatePercent float64
		expected          float64
	}{
		{"Standard mortgage interest", 200000, 6.0, 1000.0},
		{"Car loan interest", 15000, 4.5, 56.25},
		{"Zero interest", 10000, 0.0, 0.0},
		{"High interest", 5000, 24.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.balance, tt.annualRatePercent)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestGenerateScheduleWithoutExtraRunsFullTerm(t *testing.T) {
	tests := []LoanTerms{
		{Principal: 100000, AnnualRatePercent: 6, TermYears: 30},
		{Principal: 250000, AnnualRatePercent: 4.5, TermYears: 15},
		{Principal: 10000, AnnualRatePercent: 18, TermYears: 3},
		{Principal: 12000, AnnualRatePercent: 0, TermYears: 1},
		{Principal: 10000, AnnualRatePercent: 0, TermYears: 3},
		{Principal: 5000, AnnualRatePercent: 7, TermYears: 2.5},
		{Principal: 1e9, AnnualRatePercent: 7, TermYears: 30},
		{Principal: 1, AnnualRatePercent: 3, TermYears: 1},
	}

	for _, terms := range tests {
		schedule, err := GenerateAmortizationSchedule(terms)
		if err != nil {
			t.Fatalf("GenerateAmortizationSchedule(%+v) error = %v", terms, err)
		}

		expectedRows := int(terms.TermYears * 12)
		if len(schedule.Rows) != expectedRows {
			t.Errorf("%+v: expected %d rows, got %d", terms, expectedRows, len(schedule.Rows))
			continue
		}

		last := schedule.Rows[len(schedule.Rows)-1]
		if last.RemainingBalance != 0 {
			t.Errorf("%+v: final remaining balance = %v, expected 0", terms, last.RemainingBalance)
		}
	}
}

func TestGenerateScheduleTinyRatesRunFullTerm(t *testing.T) {
	for _, rate := range []float64{1e-4, 5.6e-5, 1e-6, 1e-8, 1e-10, 1e-12} {
		terms := LoanTerms{Principal: 100000, AnnualRatePercent: rate, TermYears: 30}
		schedule, err := GenerateAmortizationSchedule(terms)
		if err != nil {
			t.Fatalf("GenerateAmortizationSchedule(%+v) error = %v", terms, err)
		}
		if len(schedule.Rows) != 360 {
			t.Errorf("rate %v: expected 360 rows, got %d", rate, len(schedule.Rows))
		}
		// at these rates the payment is the zero-interest payment to the cent
		testutil.AssertClose(t, "monthly payment", schedule.MonthlyPayment, 100000.0/360, 0.01)
	}
}

func TestGenerateScheduleConservesPrincipal(t *testing.T) {
	tests := []LoanTerms{
		{Principal: 100000, AnnualRatePercent: 6, TermYears: 30},
		{Principal: 100000, AnnualRatePercent: 6, TermYears: 30, ExtraMonthlyPayment: 200},
		{Principal: 100000, AnnualRatePercent: 6, TermYears: 30, ExtraMonthlyPayment: 1e6},
		{Principal: 12000, AnnualRatePercent: 0, TermYears: 1, ExtraMonthlyPayment: 250},
		{Principal: 350000, AnnualRatePercent: 7.25, TermYears: 20, ExtraMonthlyPayment: 333.33},
	}

	for _, terms := range tests {
		schedule, err := GenerateAmortizationSchedule(terms)
		if err != nil {
			t.Fatalf("GenerateAmortizationSchedule(%+v) error = %v", terms, err)
		}

		total := testutil.Sum(schedule.Rows, func(r AmortizationRow) float64 { return r.Principal })
		testutil.AssertClose(t, "sum of principal portions", total, terms.Principal, epsilon)
	}
}

func TestGenerateScheduleBalanceStrictlyDecreases(t *testing.T) {
	schedule, err := GenerateAmortizationSchedule(LoanTerms{
		Principal: 180000, AnnualRatePercent: 5.5, TermYears: 25, ExtraMonthlyPayment: 75,
	})
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}

	previous := 180000.0
	for i, row := range schedule.Rows {
		if row.Month != i+1 {
			t.Fatalf("row %d has month %d", i, row.Month)
		}
		if row.RemainingBalance >= previous {
			t.Fatalf("month %d balance %.6f did not decrease from %.6f", row.Month, row.RemainingBalance, previous)
		}
		if row.Interest < 0 || row.Principal < 0 || row.TotalPayment < 0 || row.ExtraPayment < 0 {
			t.Fatalf("month %d has a negative column: %+v", row.Month, row)
		}
		previous = row.RemainingBalance
	}
}

func TestGenerateScheduleExtraPaymentShortensPayoff(t *testing.T) {
	base := LoanTerms{Principal: 100000, AnnualRatePercent: 6, TermYears: 30}
	previousRows := math.MaxInt

	for _, extra := range []float64{0, 50, 100, 200, 500, 1000, 5000} {
		terms := base
		terms.ExtraMonthlyPayment = extra
		schedule, err := GenerateAmortizationSchedule(terms)
		if err != nil {
			t.Fatalf("GenerateAmortizationSchedule(extra=%v) error = %v", extra, err)
		}
		if len(schedule.Rows) >= previousRows {
			t.Errorf("extra=%v produced %d rows, expected fewer than %d", extra, len(schedule.Rows), previousRows)
		}
		previousRows = len(schedule.Rows)
	}
}

func TestGenerateScheduleZeroInterest(t *testing.T) {
	terms := LoanTerms{Principal: 12000, AnnualRatePercent: 0, TermYears: 1}
	schedule, err := GenerateAmortizationSchedule(terms)
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}

	if schedule.MonthlyPayment != 1000 {
		t.Errorf("expected monthly payment of exactly 1000, got %v", schedule.MonthlyPayment)
	}
	for _, row := range schedule.Rows {
		if row.Interest != 0 {
			t.Errorf("month %d interest = %v, expected 0", row.Month, row.Interest)
		}
	}
}

func TestGenerateScheduleDegenerateInputs(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
	}{
		{"Zero principal", LoanTerms{Principal: 0, AnnualRatePercent: 6, TermYears: 30}},
		{"Zero term", LoanTerms{Principal: 100000, AnnualRatePercent: 6, TermYears: 0}},
		{"Negative principal", LoanTerms{Principal: -5, AnnualRatePercent: 6, TermYears: 30}},
		{"Negative term", LoanTerms{Principal: 100000, AnnualRatePercent: 6, TermYears: -1}},
		{"NaN rate", LoanTerms{Principal: 100000, AnnualRatePercent: math.NaN(), TermYears: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := GenerateAmortizationSchedule(tt.terms)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if schedule.MonthlyPayment != 0 {
				t.Errorf("expected monthly payment 0, got %v", schedule.MonthlyPayment)
			}
			if !schedule.Empty() {
				t.Errorf("expected empty schedule, got %d rows", len(schedule.Rows))
			}
		})
	}
}

func TestGenerateScheduleReportsNonAmortizingTerms(t *testing.T) {
	_, err := GenerateAmortizationSchedule(LoanTerms{
		Principal: math.Inf(1), AnnualRatePercent: 6, TermYears: 1,
	})
	if !errors.Is(err, ErrScheduleNotAmortizing) {
		t.Fatalf("expected ErrScheduleNotAmortizing, got %v", err)
	}
}

func TestGenerateScheduleIgnoresNegativeExtra(t *testing.T) {
	withNegative, err := GenerateAmortizationSchedule(LoanTerms{
		Principal: 100000, AnnualRatePercent: 6, TermYears: 30, ExtraMonthlyPayment: -250,
	})
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}
	if len(withNegative.Rows) != 360 {
		t.Errorf("expected 360 rows, got %d", len(withNegative.Rows))
	}
	for _, row := range withNegative.Rows {
		if row.ExtraPayment != 0 {
			t.Fatalf("month %d extra = %v, expected 0", row.Month, row.ExtraPayment)
		}
	}
}

func TestGenerateScheduleIsDeterministic(t *testing.T) {
	terms := LoanTerms{Principal: 275000, AnnualRatePercent: 6.875, TermYears: 30, ExtraMonthlyPayment: 120}
	first, err := GenerateAmortizationSchedule(terms)
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}
	second, err := GenerateAmortizationSchedule(terms)
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}

	if first.MonthlyPayment != second.MonthlyPayment || len(first.Rows) != len(second.Rows) {
		t.Fatalf("repeated calculation differs")
	}
	for i := range first.Rows {
		if first.Rows[i] != second.Rows[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i+1, first.Rows[i], second.Rows[i])
		}
	}
}

func TestGenerateScheduleThirtyYearScenario(t *testing.T) {
	schedule, err := GenerateAmortizationSchedule(LoanTerms{
		Principal: 100000, AnnualRatePercent: 6, TermYears: 30,
	})
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}

	testutil.AssertClose(t, "monthly payment", schedule.MonthlyPayment, 599.55, 0.005)
	if len(schedule.Rows) != 360 {
		t.Fatalf("expected 360 rows, got %d", len(schedule.Rows))
	}

	first := schedule.Rows[0]
	testutil.AssertClose(t, "row 1 interest", first.Interest, 500.00, 0.005)
	testutil.AssertClose(t, "row 1 principal", first.Principal, 99.55, 0.005)
	testutil.AssertClose(t, "row 1 remaining balance", first.RemainingBalance, 99900.45, 0.005)
	if first.ExtraPayment != 0 {
		t.Errorf("row 1 extra = %v, expected 0", first.ExtraPayment)
	}

	if last := schedule.Rows[359]; last.Month != 360 || last.RemainingBalance != 0 {
		t.Errorf("row 360 = %+v, expected month 360 with zero balance", last)
	}
}

func TestGenerateScheduleExtraPaymentScenario(t *testing.T) {
	schedule, err := GenerateAmortizationSchedule(LoanTerms{
		Principal: 100000, AnnualRatePercent: 6, TermYears: 30, ExtraMonthlyPayment: 200,
	})
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}

	if len(schedule.Rows) >= 360 {
		t.Fatalf("expected fewer than 360 rows, got %d", len(schedule.Rows))
	}
	if len(schedule.Rows) != 197 {
		t.Errorf("expected payoff in month 197, got %d", len(schedule.Rows))
	}

	first := schedule.Rows[0]
	testutil.AssertClose(t, "row 1 total payment", first.TotalPayment, 799.55, 0.005)
	if first.ExtraPayment != 200 {
		t.Errorf("row 1 extra = %v, expected 200", first.ExtraPayment)
	}

	previous := schedule.Rows[len(schedule.Rows)-2]
	last := schedule.Rows[len(schedule.Rows)-1]
	if last.TotalPayment != previous.RemainingBalance+last.Interest {
		t.Errorf("closing payment = %v, expected %v", last.TotalPayment, previous.RemainingBalance+last.Interest)
	}
	if last.TotalPayment == schedule.MonthlyPayment+200 {
		t.Errorf("closing payment should not equal the nominal payment")
	}
	if last.ExtraPayment != 0 {
		t.Errorf("closing row extra = %v, expected 0", last.ExtraPayment)
	}
	if last.RemainingBalance != 0 {
		t.Errorf("closing row balance = %v, expected 0", last.RemainingBalance)
	}
}

func TestGenerateScheduleExtraExceedingBalanceClosesImmediately(t *testing.T) {
	schedule, err := GenerateAmortizationSchedule(LoanTerms{
		Principal: 100000, AnnualRatePercent: 6, TermYears: 30, ExtraMonthlyPayment: 1e6,
	})
	if err != nil {
		t.Fatalf("GenerateAmortizationSchedule() error = %v", err)
	}

	if len(schedule.Rows) != 1 {
		t.Fatalf("expected a single row, got %d", len(schedule.Rows))
	}
	row := schedule.Rows[0]
	if row.Principal != 100000 || row.TotalPayment != 100500 || row.RemainingBalance != 0 {
		t.Errorf("unexpected closing row %+v", row)
	}
}

func TestGeneratorLogsPayoff(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	generator := NewAmortizationScheduleGenerator(zap.New(core))

	schedule, err := generator.Generate("house", LoanTerms{Principal: 100000, AnnualRatePercent: 6, TermYears: 30})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(schedule.Rows) != 360 {
		t.Errorf("expected 360 rows, got %d", len(schedule.Rows))
	}

	entries := logs.FilterField(zap.String("op", "loans.Generate")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if entries[0].Message != "loan house pays off in month 360" {
		t.Errorf("unexpected log message %q", entries[0].Message)
	}
}

func TestGeneratorDegradesAndWrapsErrors(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(nil)

	schedule, err := generator.Generate("empty", LoanTerms{Principal: 0, AnnualRatePercent: 6, TermYears: 30})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !schedule.Empty() {
		t.Errorf("expected empty schedule")
	}

	_, err = generator.Generate("broken", LoanTerms{Principal: math.Inf(1), AnnualRatePercent: 6, TermYears: 1})
	if !errors.Is(err, ErrScheduleNotAmortizing) {
		t.Fatalf("expected wrapped ErrScheduleNotAmortizing, got %v", err)
	}
}
