package domain

import "time"

// SignalWeight is one feature's share of a model prediction.
type SignalWeight struct {
	Value            float64 `json:"value"`
	Contribution     float64 `json:"contribution"`
	NormalizedWeight float64 `json:"normalizedWeight"`
}

// Explanation decomposes one prediction into per-signal contributions.
type Explanation struct {
	Signals         map[string]float64      `json:"signals"`
	SignalWeights   map[string]SignalWeight `json:"signalWeights"`
	ModelPrediction float64                 `json:"modelPrediction"`
	Reason          string                  `json:"reason"`
	ReasonSummary   []string                `json:"reasonSummary"`
	Recommendation  Recommendation          `json:"recommendation"`
}

// Recommendation is a bounded price proposal for one room. MinAllowed and
// MaxAllowed are display guardrails only; the floor of 20 is the one bound
// enforced on Suggested.
type Recommendation struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	CurrentPrice  float64                 `json:"currentPrice"`
	CompetitorAvg float64                 `json:"competitorAvg"`
	Occupancy     float64                 `json:"occupancy"`
	MinAllowed    float64                 `json:"minAllowed"`
	MaxAllowed    float64                 `json:"maxAllowed"`
	Suggested     float64                 `json:"suggested"`
	DeltaPct      float64                 `json:"deltaPct"`
	Reason        string                  `json:"reason"`
	ReasonSummary []string                `json:"reasonSummary"`
	SignalWeights map[string]SignalWeight `json:"signalWeights"`
}

// Analysis pairs a room with its full explanation.
type Analysis struct {
	RoomID      string      `json:"roomId"`
	RoomName    string      `json:"roomName"`
	Explanation Explanation `json:"explanation"`
}

// Approval is one operator decision. Suggested is the price the operator
// settled on, which may differ from what the engine proposed.
type Approval struct {
	ID        string  `json:"id"`
	Approved  bool    `json:"approved"`
	Suggested float64 `json:"suggested"`
}

// AppliedChange records one approved price write, with the explanation
// re-derived at the price that was actually applied.
type AppliedChange struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Proposed      float64     `json:"proposed"`
	Approved      bool        `json:"approved"`
	Final         float64     `json:"final"`
	Explanation   Explanation `json:"explanation"`
	ReasonSummary []string    `json:"reasonSummary"`
}

// AuditEntry is the append-only record of one apply call. Never mutated.
type AuditEntry struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Operator  string          `json:"operator"`
	Prompt    string          `json:"prompt"`
	Intent    Intent          `json:"intent"`
	Approvals []Approval      `json:"approvals"`
	Applied   []AppliedChange `json:"applied"`
}
