package pricing

import (
	"testing"

	"ratepilot/internal/domain"
)

func sampleRooms() []domain.Room {
	return []domain.Room{
		{ID: "A", Name: "Standard", CurrentPrice: 100, Occupancy: 0.6, CompetitorPrices: []float64{110, 90}},
		{ID: "B", Name: "Deluxe", CurrentPrice: 160, Occupancy: 0.8, CompetitorPrices: []float64{150, 170, 155}},
		{ID: "C", Name: "Suite", CurrentPrice: 240, Occupancy: 0.35, CompetitorPrices: []float64{220}},
	}
}

func TestTrain_Deterministic(t *testing.T) {
	w1, s1 := Train(sampleRooms())
	w2, s2 := Train(sampleRooms())
	if w1 != w2 {
		t.Fatalf("weights differ across identical fits: %v vs %v", w1, w2)
	}
	if s1.Epochs != s2.Epochs || s1.Loss != s2.Loss {
		t.Fatalf("stats differ across identical fits: %+v vs %+v", s1, s2)
	}
}

func TestTrain_EmptyCollection(t *testing.T) {
	w, stats := Train(nil)
	if w != initialWeights() {
		t.Fatalf("empty fit must return the prior, got %v", w)
	}
	if stats.Epochs != 0 || stats.Diverged {
		t.Fatalf("unexpected stats for empty fit: %+v", stats)
	}
}

func TestTrain_ConvergesOnZeroRoom(t *testing.T) {
	// All-zero features give zero loss immediately.
	_, stats := Train([]domain.Room{{ID: "Z"}})
	if !stats.Converged || stats.Epochs != 1 {
		t.Fatalf("expected first-epoch convergence, got %+v", stats)
	}
}

func TestTrain_DivergenceGuard(t *testing.T) {
	// Large feature magnitudes overshoot at this learning rate; the guard
	// must abort well before the epoch cap instead of looping on garbage.
	rooms := []domain.Room{{ID: "big", CurrentPrice: 5000, Occupancy: 0.6, CompetitorPrices: []float64{5000}}}
	_, stats := Train(rooms)
	if !stats.Diverged {
		t.Fatalf("expected diverged fit, got %+v", stats)
	}
	if stats.Epochs >= maxEpochs {
		t.Fatalf("guard did not abort early: ran %d epochs", stats.Epochs)
	}
}

func TestPredict_DotProduct(t *testing.T) {
	w := Weights{1, 2, 3, 4}
	room := domain.Room{CurrentPrice: 10, Occupancy: 0.5, CompetitorPrices: []float64{2, 4}}
	// 1*1 + 2*10 + 3*0.5 + 4*3
	if got := Predict(w, room); got != 34.5 {
		t.Fatalf("predict = %v, want 34.5", got)
	}
}
