package server

import (
	"net/http"

	"github.com/iwvelando/loan-calculator/pkg/calculators"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
)

type taxRequest struct {
	Income float64 `json:"income"`
}

type gratuityRequest struct {
	LastDrawnSalary float64 `json:"lastDrawnSalary"`
	Years           int     `json:"years"`
	Months          int     `json:"months"`
	Covered         bool    `json:"covered"`
}

type creatinineClearanceRequest struct {
	AgeYears            float64 `json:"ageYears"`
	WeightKg            float64 `json:"weightKg"`
	SerumCreatinineMgDl float64 `json:"serumCreatinineMgDl"`
	Female              bool    `json:"female"`
}

type bodySurfaceAreaRequest struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}

type fuelEfficiencyRequest struct {
	DistanceKm    float64 `json:"distanceKm"`
	FuelLitres    float64 `json:"fuelLitres"`
	PricePerLitre float64 `json:"pricePerLitre"`
}

// calculate decodes a request into req, runs compute and writes its result.
func calculate[Req any, Resp any](h *handler, w http.ResponseWriter, r *http.Request, op string, compute func(Req) (Resp, error)) {
	var req Req
	if status, err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}

	result, err := compute(req)
	if err != nil {
		h.respondError(w, statusFor(err), err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleTax(w http.ResponseWriter, r *http.Request) {
	calculate(h, w, r, "server.handleTax", func(req taxRequest) (calculators.TaxResult, error) {
		return calculators.CalculateIncomeTax(req.Income, h.tax)
	})
}

func (h *handler) handleGratuity(w http.ResponseWriter, r *http.Request) {
	calculate(h, w, r, "server.handleGratuity", func(req gratuityRequest) (calculators.GratuityResult, error) {
		return calculators.CalculateGratuity(req.LastDrawnSalary, req.Years, req.Months, req.Covered)
	})
}

func (h *handler) handleCreatinineClearance(w http.ResponseWriter, r *http.Request) {
	calculate(h, w, r, "server.handleCreatinineClearance", func(req creatinineClearanceRequest) (map[string]float64, error) {
		clearance, err := calculators.CreatinineClearance(req.AgeYears, req.WeightKg, req.SerumCreatinineMgDl, req.Female)
		if err != nil {
			return nil, err
		}
		return map[string]float64{"clearanceMlPerMin": mathutil.Round(clearance)}, nil
	})
}

func (h *handler) handleBodySurfaceArea(w http.ResponseWriter, r *http.Request) {
	calculate(h, w, r, "server.handleBodySurfaceArea", func(req bodySurfaceAreaRequest) (map[string]float64, error) {
		bsa, err := calculators.BodySurfaceArea(req.WeightKg, req.HeightCm)
		if err != nil {
			return nil, err
		}
		return map[string]float64{"bodySurfaceAreaM2": mathutil.Round(bsa)}, nil
	})
}

func (h *handler) handleFuelEfficiency(w http.ResponseWriter, r *http.Request) {
	calculate(h, w, r, "server.handleFuelEfficiency", func(req fuelEfficiencyRequest) (calculators.FuelEfficiency, error) {
		return calculators.CalculateFuelEfficiency(req.DistanceKm, req.FuelLitres, req.PricePerLitre)
	})
}
