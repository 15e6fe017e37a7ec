package pricing

import "ratepilot/internal/domain"

// ApplyApprovals applies approved prices to a copy of the collection and
// builds the applied-change records for the audit trail. Rooms without an
// approval, or with approved=false, pass through untouched and produce no
// record. The explanation on each record is re-derived at the price the
// operator approved, which is the price that actually lands.
func ApplyApprovals(rooms []domain.Room, approvals []domain.Approval, intent domain.Intent, w Weights) ([]domain.Room, []domain.AppliedChange) {
	byID := make(map[string]domain.Approval, len(approvals))
	for _, a := range approvals {
		byID[a.ID] = a
	}

	updated := make([]domain.Room, len(rooms))
	copy(updated, rooms)

	var applied []domain.AppliedChange
	for i, r := range updated {
		a, ok := byID[r.ID]
		if !ok || !a.Approved {
			continue
		}
		updated[i].CurrentPrice = a.Suggested
		expl := Explain(w, updated[i], intent)
		applied = append(applied, domain.AppliedChange{
			ID:            r.ID,
			Name:          r.Name,
			Proposed:      a.Suggested,
			Approved:      true,
			Final:         updated[i].CurrentPrice,
			Explanation:   expl,
			ReasonSummary: expl.ReasonSummary,
		})
	}
	return updated, applied
}
