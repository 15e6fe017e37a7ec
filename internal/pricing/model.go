package pricing

import "ratepilot/internal/domain"

// Weights is a trained weight vector in featureOrder alignment.
type Weights [NumFeatures]float64

const (
	learningRate  = 5e-7
	maxEpochs     = 5000
	convergedLoss = 1e-6
	// divergenceRun aborts a fit once total loss has grown this many
	// epochs in a row. The fixed epoch cap alone leaves a runaway fit
	// burning cycles and returning garbage weights.
	divergenceRun = 10
)

// initialWeights is the prior matching the synthetic target's structure.
func initialWeights() Weights { return Weights{0, 0.5, 0.5, 0.2} }

// target is the self-supervised label: move toward the competitor average,
// adjusted for occupancy deviation from a 60% baseline.
func target(f FeatureVector) float64 {
	p := f.CurrentPrice
	return p + 0.5*(f.CompetitorAvg-p) + 0.2*(f.Occupancy-0.6)*p
}

// TrainStats reports how a fit ended.
type TrainStats struct {
	Epochs    int
	Loss      float64
	Converged bool
	Diverged  bool
}

// Train fits the model against the current room collection with fixed-schedule
// batch gradient descent. Deterministic: identical input yields bit-identical
// weights. An empty collection returns the prior untouched.
func Train(rooms []domain.Room) (Weights, TrainStats) {
	w := initialWeights()
	if len(rooms) == 0 {
		return w, TrainStats{}
	}

	xs := make([][NumFeatures]float64, len(rooms))
	ys := make([]float64, len(rooms))
	for i, r := range rooms {
		f := Features(r)
		xs[i] = f.Values()
		ys[i] = target(f)
	}

	var stats TrainStats
	prevLoss := 0.0
	rising := 0
	for epoch := 1; epoch <= maxEpochs; epoch++ {
		var loss float64
		var grad [NumFeatures]float64
		for i, x := range xs {
			err := dot(w, x) - ys[i]
			loss += err * err
			for j := range grad {
				grad[j] += 2 * err * x[j]
			}
		}
		for j := range w {
			w[j] -= learningRate * grad[j]
		}

		stats.Epochs = epoch
		stats.Loss = loss
		if loss < convergedLoss {
			stats.Converged = true
			break
		}
		if epoch > 1 && loss > prevLoss {
			rising++
			if rising >= divergenceRun {
				stats.Diverged = true
				break
			}
		} else {
			rising = 0
		}
		prevLoss = loss
	}
	return w, stats
}

// Predict is the model estimate for one room: dot(weights, features).
func Predict(w Weights, room domain.Room) float64 {
	return dot(w, Features(room).Values())
}

func dot(w Weights, x [NumFeatures]float64) float64 {
	var sum float64
	for i := range w {
		sum += w[i] * x[i]
	}
	return sum
}
