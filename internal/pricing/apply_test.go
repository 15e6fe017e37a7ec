package pricing

import (
	"testing"

	"ratepilot/internal/domain"
)

func TestApplyApprovals_ApprovedWritesFinalPrice(t *testing.T) {
	w := Weights{0, 0.5, 0.5, 0.2}
	rooms := []domain.Room{roomA(), {ID: "B", Name: "Deluxe", CurrentPrice: 160, Occupancy: 0.8}}
	approvals := []domain.Approval{{ID: "A", Approved: true, Suggested: 105}}

	updated, applied := ApplyApprovals(rooms, approvals, domain.IntentIncrease, w)

	if updated[0].CurrentPrice != 105 {
		t.Fatalf("room A price = %v, want 105", updated[0].CurrentPrice)
	}
	if updated[1].CurrentPrice != 160 {
		t.Fatalf("room B must be untouched, got %v", updated[1].CurrentPrice)
	}
	if len(applied) != 1 {
		t.Fatalf("applied records = %d, want 1", len(applied))
	}
	rec := applied[0]
	if rec.ID != "A" || rec.Final != 105 || rec.Proposed != 105 || !rec.Approved {
		t.Fatalf("unexpected applied record: %+v", rec)
	}
	// Explanation must be re-derived at the approved price.
	if rec.Explanation.Signals[FeatureCurrentPrice] != 105 {
		t.Fatalf("explanation not derived at approved price: %v", rec.Explanation.Signals)
	}
	// Input collection stays untouched.
	if rooms[0].CurrentPrice != 100 {
		t.Fatalf("input mutated: %v", rooms[0].CurrentPrice)
	}
}

func TestApplyApprovals_RejectedIsNoOp(t *testing.T) {
	w := Weights{0, 0.5, 0.5, 0.2}
	rooms := []domain.Room{roomA()}
	approvals := []domain.Approval{{ID: "A", Approved: false, Suggested: 105}}

	// Applying a rejection twice must never move the price.
	for i := 0; i < 2; i++ {
		updated, applied := ApplyApprovals(rooms, approvals, domain.IntentReview, w)
		if updated[0].CurrentPrice != 100 {
			t.Fatalf("pass %d: price moved to %v", i, updated[0].CurrentPrice)
		}
		if len(applied) != 0 {
			t.Fatalf("pass %d: expected no applied records, got %d", i, len(applied))
		}
		rooms = updated
	}
}

func TestApplyApprovals_UnknownRoomIgnored(t *testing.T) {
	w := Weights{0, 0.5, 0.5, 0.2}
	updated, applied := ApplyApprovals([]domain.Room{roomA()},
		[]domain.Approval{{ID: "nope", Approved: true, Suggested: 50}}, domain.IntentReview, w)
	if updated[0].CurrentPrice != 100 || len(applied) != 0 {
		t.Fatalf("approval for unknown room must be a no-op: %+v %+v", updated, applied)
	}
}
