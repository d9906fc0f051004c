package calculators

const (
	kilometresPerMile = 1.609344
	litresPerUSGallon = 3.785411784
	litresPerUKGallon = 4.54609
)

// FuelEfficiency describes the consumption of a trip.
type FuelEfficiency struct {
	KmPerLitre       float64 `json:"kmPerLitre"`
	LitresPer100Km   float64 `json:"litresPer100Km"`
	MilesPerGallonUS float64 `json:"milesPerGallonUS"`
	MilesPerGallonUK float64 `json:"milesPerGallonUK"`
	TripCost         float64 `json:"tripCost,omitempty"`
	CostPerKm        float64 `json:"costPerKm,omitempty"`
}

// CalculateFuelEfficiency derives consumption figures from a distance driven
// and the fuel used. A zero price per litre leaves the cost fields empty.
func CalculateFuelEfficiency(distanceKm, fuelLitres, pricePerLitre float64) (FuelEfficiency, error) {
	if err := requirePositive("distance", distanceKm); err != nil {
		return FuelEfficiency{}, err
	}
	if err := requirePositive("fuel used", fuelLitres); err != nil {
		return FuelEfficiency{}, err
	}
	if err := requireNonNegative("price per litre", pricePerLitre); err != nil {
		return FuelEfficiency{}, err
	}

	kmPerLitre := distanceKm / fuelLitres
	result := FuelEfficiency{
		KmPerLitre:       kmPerLitre,
		LitresPer100Km:   fuelLitres / distanceKm * 100,
		MilesPerGallonUS: kmPerLitre * litresPerUSGallon / kilometresPerMile,
		MilesPerGallonUK: kmPerLitre * litresPerUKGallon / kilometresPerMile,
	}
	if pricePerLitre > 0 {
		result.TripCost = fuelLitres * pricePerLitre
		result.CostPerKm = result.TripCost / distanceKm
	}
	return result, nil
}
