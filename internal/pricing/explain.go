package pricing

import (
	"fmt"
	"math"
	"sort"

	"ratepilot/internal/domain"
)

// Explain decomposes one prediction into per-signal contributions and wraps
// the room's recommendation for the same intent. Normalized weights are
// contribution/totalAbs; when every contribution is zero they are all zero.
func Explain(w Weights, room domain.Room, intent domain.Intent) domain.Explanation {
	f := Features(room)
	x := f.Values()
	pred := dot(w, x)

	var contrib [NumFeatures]float64
	var totalAbs float64
	for i := range x {
		contrib[i] = w[i] * x[i]
		totalAbs += math.Abs(contrib[i])
	}

	weights := make(map[string]domain.SignalWeight, NumFeatures)
	for i, name := range featureOrder {
		nw := 0.0
		if totalAbs > 0 {
			nw = contrib[i] / totalAbs
		}
		weights[name] = domain.SignalWeight{
			Value:            x[i],
			Contribution:     contrib[i],
			NormalizedWeight: nw,
		}
	}

	// Rank by absolute contribution, ties keep declaration order.
	order := []int{0, 1, 2, 3}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(contrib[order[a]]) > math.Abs(contrib[order[b]])
	})
	top1, top2 := featureOrder[order[0]], featureOrder[order[1]]
	summary := []string{top1, top2}

	reason := fmt.Sprintf("Model $%.2f — top signals: %s:%d%%, %s:%d%%",
		pred,
		top1, pct(weights[top1].NormalizedWeight),
		top2, pct(weights[top2].NormalizedWeight),
	)

	rec := Recommend(room, intent, &w)
	rec.Reason = reason
	rec.ReasonSummary = summary
	rec.SignalWeights = weights

	return domain.Explanation{
		Signals:         f.Map(),
		SignalWeights:   weights,
		ModelPrediction: pred,
		Reason:          reason,
		ReasonSummary:   summary,
		Recommendation:  rec,
	}
}

func pct(nw float64) int { return int(math.Round(nw * 100)) }
