package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"go.uber.org/zap"
)

const apiLoanName = "request"

type amortizationRequest struct {
	Principal           float64 `json:"principal"`
	AnnualRatePercent   float64 `json:"annualRatePercent"`
	TermYears           float64 `json:"termYears"`
	ExtraMonthlyPayment float64 `json:"extraMonthlyPayment"`
}

func (req amortizationRequest) terms() loans.LoanTerms {
	return loans.LoanTerms{
		Principal:           req.Principal,
		AnnualRatePercent:   req.AnnualRatePercent,
		TermYears:           req.TermYears,
		ExtraMonthlyPayment: req.ExtraMonthlyPayment,
	}
}

type amortizationResponse struct {
	MonthlyPayment float64           `json:"monthlyPayment"`
	Rows           []amortizationRow `json:"rows"`
	Summary        summaryResponse   `json:"summary"`
	CSV            string            `json:"csv"`
}

type amortizationRow struct {
	Month            int     `json:"month"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	ExtraPayment     float64 `json:"extraPayment"`
	TotalPayment     float64 `json:"totalPayment"`
	RemainingBalance float64 `json:"remainingBalance"`
}

type summaryResponse struct {
	TotalInterest   float64 `json:"totalInterest"`
	TotalPrincipal  float64 `json:"totalPrincipal"`
	TotalExtra      float64 `json:"totalExtra"`
	TotalPaid       float64 `json:"totalPaid"`
	PayoffMonths    int     `json:"payoffMonths"`
	ScheduledMonths int     `json:"scheduledMonths"`
	MonthsSaved     int     `json:"monthsSaved"`
	InterestSaved   float64 `json:"interestSaved"`
}

func newAmortizationResponse(result output.Result, csv string) amortizationResponse {
	rows := make([]amortizationRow, 0, len(result.Schedule.Rows))
	for _, row := range result.Schedule.Rows {
		rows = append(rows, amortizationRow{
			Month:            row.Month,
			Interest:         format.Money(row.Interest),
			Principal:        format.Money(row.Principal),
			ExtraPayment:     format.Money(row.ExtraPayment),
			TotalPayment:     format.Money(row.TotalPayment),
			RemainingBalance: format.Money(row.RemainingBalance),
		})
	}

	summary := result.Summary
	return amortizationResponse{
		MonthlyPayment: format.Money(result.Schedule.MonthlyPayment),
		Rows:           rows,
		Summary: summaryResponse{
			TotalInterest:   format.Money(summary.TotalInterest),
			TotalPrincipal:  format.Money(summary.TotalPrincipal),
			TotalExtra:      format.Money(summary.TotalExtra),
			TotalPaid:       format.Money(summary.TotalPaid),
			PayoffMonths:    summary.PayoffMonths,
			ScheduledMonths: summary.ScheduledMonths,
			MonthsSaved:     summary.MonthsSaved,
			InterestSaved:   format.Money(summary.InterestSaved),
		},
		CSV: csv,
	}
}

func (h *handler) handleAmortization(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAmortization"

	var req amortizationRequest
	if status, err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}

	result, err := h.amortize(req.terms())
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	csv, err := output.CsvString([]output.Result{result})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, newAmortizationResponse(result, csv))
}

func (h *handler) amortize(terms loans.LoanTerms) (output.Result, error) {
	if err := validation.ValidateLoanTerms(terms); err != nil {
		return output.Result{}, err
	}

	schedule, err := h.generator.Generate(apiLoanName, terms)
	if err != nil {
		return output.Result{}, err
	}

	summary, err := loans.Summarize(terms, schedule)
	if err != nil {
		return output.Result{}, err
	}
	return output.Result{Name: apiLoanName, Terms: terms, Schedule: schedule, Summary: summary}, nil
}

func (h *handler) handleAmortizationChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAmortizationChart"

	terms, err := termsFromQuery(r.URL.Query())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	result, err := h.amortize(terms)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	var baseline loans.Schedule
	if terms.ExtraMonthlyPayment > 0 {
		withoutExtra := terms
		withoutExtra.ExtraMonthlyPayment = 0
		if baseline, err = loans.GenerateAmortizationSchedule(withoutExtra); err != nil {
			h.respondError(w, statusFor(err), err.Error(), op)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := balanceChart(result, baseline).Render(w); err != nil {
		h.logger.Error("failed to render chart",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func termsFromQuery(values url.Values) (loans.LoanTerms, error) {
	var terms loans.LoanTerms
	fields := []struct {
		name     string
		dst      *float64
		required bool
	}{
		{"principal", &terms.Principal, true},
		{"annualRatePercent", &terms.AnnualRatePercent, true},
		{"termYears", &terms.TermYears, true},
		{"extraMonthlyPayment", &terms.ExtraMonthlyPayment, false},
	}

	for _, field := range fields {
		raw := values.Get(field.name)
		if raw == "" {
			if field.required {
				return loans.LoanTerms{}, fmt.Errorf("missing query parameter %q", field.name)
			}
			continue
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return loans.LoanTerms{}, fmt.Errorf("invalid query parameter %q: %w", field.name, err)
		}
		*field.dst = parsed
	}
	return terms, nil
}

// balanceChart plots the remaining balance by month, alongside the balance
// without extra payments when a baseline is given.
func balanceChart(result output.Result, baseline loans.Schedule) *charts.Line {
	months := len(result.Schedule.Rows)
	if len(baseline.Rows) > months {
		months = len(baseline.Rows)
	}

	axis := make([]string, months)
	for i := range axis {
		axis[i] = strconv.Itoa(i + 1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Amortization schedule"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Remaining balance",
			Subtitle: output.SummaryLine(result.Summary),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Balance"}),
	)

	line.SetXAxis(axis).AddSeries("Remaining balance", balanceSeries(result.Schedule))
	if !baseline.Empty() {
		line.AddSeries("Without extra payments", balanceSeries(baseline))
	}
	return line
}

func balanceSeries(schedule loans.Schedule) []opts.LineData {
	data := make([]opts.LineData, 0, len(schedule.Rows))
	for _, row := range schedule.Rows {
		data = append(data, opts.LineData{Value: format.Money(row.RemainingBalance)})
	}
	return data
}

type optimizeRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         float64 `json:"termYears"`
	TargetMonths      int     `json:"targetMonths"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"

	var req optimizeRequest
	if status, err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}

	terms := loans.LoanTerms{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermYears:         req.TermYears,
	}
	if err := validation.ValidateLoanTerms(terms); err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	summary, err := h.optimizer.MinimumExtraPayment(apiLoanName, terms, req.TargetMonths)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}

	summary.Value = format.Money(summary.Value)
	summary.InterestSaved = format.Money(summary.InterestSaved)
	h.writeJSON(w, http.StatusOK, summary)
}
