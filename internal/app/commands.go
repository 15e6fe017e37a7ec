package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ratepilot/internal/adapters/observability"
	"ratepilot/internal/domain"
	"ratepilot/internal/pricing"
)

// ApplyService is the write side: the approve/apply/audit protocol.
type ApplyService struct {
	repo  domain.RoomRepository
	audit domain.AuditLog
	// gate serializes the load-mutate-persist sequence within this
	// process; the repo's version check catches writers elsewhere.
	gate *semaphore.Weighted
}

func NewApplyService(r domain.RoomRepository, a domain.AuditLog) *ApplyService {
	return &ApplyService{repo: r, audit: a, gate: semaphore.NewWeighted(1)}
}

type ApplyRequest struct {
	Operator  string
	Prompt    string
	Intent    domain.Intent
	Approvals []domain.Approval
}

// ApplyResult carries the next persisted state plus the audit record. A
// failed audit append lands in AuditErr instead of failing the apply; the
// caller may inspect or ignore it.
type ApplyResult struct {
	UpdatedRooms []domain.Room     `json:"updatedRooms"`
	Audit        domain.AuditEntry `json:"audit"`
	AuditErr     error             `json:"-"`
}

// Apply retrains the model fresh from the current collection, writes each
// approved room's operator-chosen price, persists the full collection, and
// appends one audit entry. Rejections and unknown ids are no-ops. Nothing is
// mutated when the approvals are malformed or the persistence write fails.
func (s *ApplyService) Apply(ctx context.Context, req ApplyRequest) (ApplyResult, error) {
	if err := validateApprovals(req.Approvals); err != nil {
		observability.ObserveApply("invalid")
		return ApplyResult{}, err
	}

	if err := s.gate.Acquire(ctx, 1); err != nil {
		return ApplyResult{}, err
	}
	defer s.gate.Release(1)

	rooms, version, err := s.repo.LoadRooms(ctx)
	if err != nil {
		observability.ObserveApply("error")
		return ApplyResult{}, fmt.Errorf("load rooms: %w", err)
	}

	weights, stats := pricing.Train(rooms)
	observability.ObserveTraining(stats.Epochs, stats.Diverged)

	updated, applied := pricing.ApplyApprovals(rooms, req.Approvals, req.Intent, weights)

	if err := s.repo.SaveRooms(ctx, updated, version); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			observability.ObserveApply("conflict")
		} else {
			observability.ObserveApply("error")
		}
		return ApplyResult{}, fmt.Errorf("persist rooms: %w", err)
	}

	entry := domain.AuditEntry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Operator:  req.Operator,
		Prompt:    req.Prompt,
		Intent:    req.Intent,
		Approvals: req.Approvals,
		Applied:   applied,
	}
	res := ApplyResult{UpdatedRooms: updated, Audit: entry}

	// Best-effort: the price change stands even if the trail write fails.
	if err := s.audit.Append(ctx, entry); err != nil {
		observability.ObserveAuditFailure()
		log.Warn().Err(err).Str("audit_id", entry.ID).Msg("audit append failed")
		res.AuditErr = err
	}

	observability.ObserveApply("ok")
	log.Info().
		Str("operator", req.Operator).
		Str("intent", string(req.Intent)).
		Int("approvals", len(req.Approvals)).
		Int("applied", len(applied)).
		Msg("apply completed")
	return res, nil
}

func validateApprovals(approvals []domain.Approval) error {
	for i, a := range approvals {
		if a.ID == "" {
			return fmt.Errorf("approval %d: missing room id: %w", i, domain.ErrInvalidInput)
		}
		if math.IsNaN(a.Suggested) || math.IsInf(a.Suggested, 0) || a.Suggested <= 0 {
			return fmt.Errorf("approval %d (%s): bad suggested price %v: %w", i, a.ID, a.Suggested, domain.ErrInvalidInput)
		}
	}
	return nil
}
