// Package pricing is the recommendation core: a small linear price model
// fitted per request, its per-signal explanations, and the bounded price
// suggestions derived from them.
package pricing

import "ratepilot/internal/domain"

// NumFeatures is fixed: intercept, currentPrice, occupancy, competitorAvg.
const NumFeatures = 4

const (
	FeatureIntercept     = "intercept"
	FeatureCurrentPrice  = "currentPrice"
	FeatureOccupancy     = "occupancy"
	FeatureCompetitorAvg = "competitorAvg"
)

// featureOrder doubles as the positional alignment for weight vectors and
// the tie-break order when ranking signals.
var featureOrder = [NumFeatures]string{
	FeatureIntercept,
	FeatureCurrentPrice,
	FeatureOccupancy,
	FeatureCompetitorAvg,
}

type FeatureVector struct {
	Intercept     float64
	CurrentPrice  float64
	Occupancy     float64
	CompetitorAvg float64
}

// Features derives the model inputs for one room. Empty competitor lists are
// fine: the average is 0, not an error.
func Features(r domain.Room) FeatureVector {
	return FeatureVector{
		Intercept:     1,
		CurrentPrice:  r.CurrentPrice,
		Occupancy:     r.Occupancy,
		CompetitorAvg: mean(r.CompetitorPrices),
	}
}

// Values returns the vector in featureOrder alignment.
func (f FeatureVector) Values() [NumFeatures]float64 {
	return [NumFeatures]float64{f.Intercept, f.CurrentPrice, f.Occupancy, f.CompetitorAvg}
}

// Map returns the named form used in explanations.
func (f FeatureVector) Map() map[string]float64 {
	return map[string]float64{
		FeatureIntercept:     f.Intercept,
		FeatureCurrentPrice:  f.CurrentPrice,
		FeatureOccupancy:     f.Occupancy,
		FeatureCompetitorAvg: f.CompetitorAvg,
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
