package pricing

import (
	"math"

	"ratepilot/internal/domain"
)

// priceFloor is the one hard bound: no suggestion ever drops below it.
const priceFloor = 20

var intentMultiplier = map[domain.Intent]float64{
	domain.IntentIncrease: 1.05,
	domain.IntentDecrease: 0.95,
	domain.IntentReview:   1.0,
}

// Recommend turns the model estimate (or the current price when w is nil)
// plus an intent into a bounded suggestion. MinAllowed/MaxAllowed are
// reported for the operator but never clamp Suggested; out-of-band
// suggestions are a policy call left to the approval screen.
func Recommend(room domain.Room, intent domain.Intent, w *Weights) domain.Recommendation {
	base := room.CurrentPrice
	if w != nil {
		base = Predict(*w, room)
	}
	if m, ok := intentMultiplier[intent]; ok {
		base *= m
	}
	suggested := math.Max(priceFloor, round2(base))

	return domain.Recommendation{
		ID:            room.ID,
		Name:          room.Name,
		CurrentPrice:  room.CurrentPrice,
		CompetitorAvg: mean(room.CompetitorPrices),
		Occupancy:     room.Occupancy,
		MinAllowed:    math.Max(priceFloor, 0.8*room.CurrentPrice),
		MaxAllowed:    1.25 * room.CurrentPrice,
		Suggested:     suggested,
		DeltaPct:      (suggested - room.CurrentPrice) / room.CurrentPrice * 100,
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
