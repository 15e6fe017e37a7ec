package domain

// Room is one priceable room type. The persisted collection owns these;
// CurrentPrice moves only through an approved apply.
type Room struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	CurrentPrice     float64   `json:"currentPrice"`
	Occupancy        float64   `json:"occupancy"` // fraction in [0,1]
	CompetitorPrices []float64 `json:"competitorPrices"`
}
