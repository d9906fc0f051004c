package calculators

import "math"

const (
	cockcroftGaultAgeBase    = 140.0
	cockcroftGaultDivisor    = 72.0
	cockcroftGaultFemaleRate = 0.85

	duBoisCoefficient    = 0.007184
	duBoisWeightExponent = 0.425
	duBoisHeightExponent = 0.725
)

// CreatinineClearance estimates creatinine clearance in mL/min with the
// Cockcroft-Gault equation.
func CreatinineClearance(ageYears, weightKg, serumCreatinineMgDl float64, female bool) (float64, error) {
	if !(ageYears >= 18 && ageYears <= 120) {
		return 0, invalid("age must be between 18 and 120 years, got %v", ageYears)
	}
	if err := requirePositive("weight", weightKg); err != nil {
		return 0, err
	}
	if err := requirePositive("serum creatinine", serumCreatinineMgDl); err != nil {
		return 0, err
	}

	clearance := ((cockcroftGaultAgeBase - ageYears) * weightKg) / (cockcroftGaultDivisor * serumCreatinineMgDl)
	if female {
		clearance *= cockcroftGaultFemaleRate
	}
	return clearance, nil
}

// BodySurfaceArea estimates body surface area in square metres with the
// Du Bois formula.
func BodySurfaceArea(weightKg, heightCm float64) (float64, error) {
	if err := requirePositive("weight", weightKg); err != nil {
		return 0, err
	}
	if err := requirePositive("height", heightCm); err != nil {
		return 0, err
	}
	return duBoisCoefficient * math.Pow(weightKg, duBoisWeightExponent) * math.Pow(heightCm, duBoisHeightExponent), nil
}
