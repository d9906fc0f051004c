package calculators

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

// TaxSlab is one band of a progressive tax schedule. An UpTo of 0 marks the
// final, unbounded slab.
type TaxSlab struct {
	UpTo        float64 `mapstructure:"upTo" yaml:"upTo" json:"upTo"`
	RatePercent float64 `mapstructure:"ratePercent" yaml:"ratePercent" json:"ratePercent"`
}

// TaxSchedule describes a progressive income tax regime.
type TaxSchedule struct {
	Slabs             []TaxSlab `mapstructure:"slabs" yaml:"slabs" json:"slabs"`
	StandardDeduction float64   `mapstructure:"standardDeduction" yaml:"standardDeduction" json:"standardDeduction"`
	// RebateLimit zeroes the tax when taxable income does not exceed it.
	RebateLimit float64 `mapstructure:"rebateLimit" yaml:"rebateLimit" json:"rebateLimit"`
	CessPercent float64 `mapstructure:"cessPercent" yaml:"cessPercent" json:"cessPercent"`
}

// SlabTax is the tax levied within one slab.
type SlabTax struct {
	From        float64 `json:"from"`
	UpTo        float64 `json:"upTo"`
	RatePercent float64 `json:"ratePercent"`
	Taxable     float64 `json:"taxable"`
	Tax         float64 `json:"tax"`
}

// TaxResult is the outcome of CalculateIncomeTax.
type TaxResult struct {
	GrossIncome          float64   `json:"grossIncome"`
	TaxableIncome        float64   `json:"taxableIncome"`
	SlabTax              float64   `json:"slabTax"`
	Rebate               float64   `json:"rebate"`
	Cess                 float64   `json:"cess"`
	TotalTax             float64   `json:"totalTax"`
	EffectiveRatePercent float64   `json:"effectiveRatePercent"`
	Breakdown            []SlabTax `json:"breakdown"`
}

// DefaultTaxSchedule returns the Indian new tax regime slabs for FY 2024-25.
func DefaultTaxSchedule() TaxSchedule {
	return TaxSchedule{
		Slabs: []TaxSlab{
			{UpTo: 300000, RatePercent: 0},
			{UpTo: 700000, RatePercent: 5},
			{UpTo: 1000000, RatePercent: 10},
			{UpTo: 1200000, RatePercent: 15},
			{UpTo: 1500000, RatePercent: 20},
			{UpTo: 0, RatePercent: 30},
		},
		StandardDeduction: 75000,
		RebateLimit:       700000,
		CessPercent:       4,
	}
}

// Validate checks that slabs ascend strictly and that the last one, and only
// the last one, is unbounded.
func (s TaxSchedule) Validate() error {
	if len(s.Slabs) == 0 {
		return invalid("tax schedule has no slabs")
	}
	if err := requireNonNegative("standard deduction", s.StandardDeduction); err != nil {
		return err
	}
	if err := requireNonNegative("rebate limit", s.RebateLimit); err != nil {
		return err
	}
	if err := requireNonNegative("cess percent", s.CessPercent); err != nil {
		return err
	}

	previous := 0.0
	for i, slab := range s.Slabs {
		if err := requireNonNegative("slab rate", slab.RatePercent); err != nil {
			return err
		}
		last := i == len(s.Slabs)-1
		if last && slab.UpTo != 0 {
			return invalid("last slab must be unbounded (upTo 0), got upper bound %.2f", slab.UpTo)
		}
		if slab.UpTo == 0 {
			if !last {
				return invalid("slab %d is unbounded but is not the last slab", i+1)
			}
			continue
		}
		if slab.UpTo <= previous {
			return invalid("slab %d upper bound %.2f does not exceed %.2f", i+1, slab.UpTo, previous)
		}
		previous = slab.UpTo
	}
	return nil
}

// CalculateIncomeTax applies a progressive slab schedule to a gross income.
func CalculateIncomeTax(income float64, schedule TaxSchedule) (TaxResult, error) {
	if err := requireNonNegative("income", income); err != nil {
		return TaxResult{}, err
	}
	if err := schedule.Validate(); err != nil {
		return TaxResult{}, err
	}

	result := TaxResult{
		GrossIncome:   income,
		TaxableIncome: mathutil.NonNegative(income - schedule.StandardDeduction),
	}

	lower := 0.0
	for _, slab := range schedule.Slabs {
		upper := slab.UpTo
		if upper == 0 {
			upper = math.Inf(1)
		}
		if result.TaxableIncome <= lower {
			break
		}

		taxable := math.Min(result.TaxableIncome, upper) - lower
		tax := mathutil.ApplyPercentage(taxable, slab.RatePercent)
		result.Breakdown = append(result.Breakdown, SlabTax{
			From:        lower,
			UpTo:        slab.UpTo,
			RatePercent: slab.RatePercent,
			Taxable:     taxable,
			Tax:         tax,
		})
		result.SlabTax += tax
		lower = upper
	}

	if result.TaxableIncome <= schedule.RebateLimit {
		result.Rebate = result.SlabTax
	}
	taxAfterRebate := result.SlabTax - result.Rebate
	result.Cess = mathutil.ApplyPercentage(taxAfterRebate, schedule.CessPercent)
	result.TotalTax = taxAfterRebate + result.Cess
	result.EffectiveRatePercent = mathutil.CalculatePercentage(result.TotalTax, income)
	return result, nil
}
