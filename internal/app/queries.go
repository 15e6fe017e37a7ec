package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ratepilot/internal/adapters/observability"
	"ratepilot/internal/domain"
	"ratepilot/internal/pricing"
)

// SuggestService is the read side: proposals, room listings, audit trail.
type SuggestService struct {
	repo     domain.RoomRepository
	audit    domain.AuditLog
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSuggestService(r domain.RoomRepository, a domain.AuditLog, c domain.Cache, ttl time.Duration) *SuggestService {
	return &SuggestService{repo: r, audit: a, cache: c, cacheTTL: ttl}
}

// SuggestResult is one full proposal set for the approval screen.
type SuggestResult struct {
	Suggestions []domain.Recommendation `json:"suggestions"`
	Analyses    []domain.Analysis       `json:"analyses"`
}

// SuggestAll retrains the model from the current collection and produces a
// recommendation plus analysis per room. Results are cached per intent and
// data snapshot; any apply changes the snapshot hash, so stale entries are
// never served and simply age out via TTL.
func (s *SuggestService) SuggestAll(ctx context.Context, intent domain.Intent) (SuggestResult, error) {
	rooms, _, err := s.repo.LoadRooms(ctx)
	if err != nil {
		return SuggestResult{}, fmt.Errorf("load rooms: %w", err)
	}

	key := suggestKey(intent, rooms)
	var out SuggestResult
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	weights, stats := pricing.Train(rooms)
	observability.ObserveTraining(stats.Epochs, stats.Diverged)
	if stats.Diverged {
		log.Warn().Int("epochs", stats.Epochs).Float64("loss", stats.Loss).
			Msg("model fit diverged; suggestions degrade to weaker weights")
	}

	out = SuggestResult{
		Suggestions: make([]domain.Recommendation, 0, len(rooms)),
		Analyses:    make([]domain.Analysis, 0, len(rooms)),
	}
	for _, room := range rooms {
		expl := pricing.Explain(weights, room, intent)
		out.Suggestions = append(out.Suggestions, expl.Recommendation)
		out.Analyses = append(out.Analyses, domain.Analysis{
			RoomID:      room.ID,
			RoomName:    room.Name,
			Explanation: expl,
		})
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

// Rooms returns the current persisted collection.
func (s *SuggestService) Rooms(ctx context.Context) ([]domain.Room, error) {
	rooms, _, err := s.repo.LoadRooms(ctx)
	return rooms, err
}

// RecentAudit returns the newest audit entries.
func (s *SuggestService) RecentAudit(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return s.audit.Recent(ctx, limit)
}

// suggestKey makes the cache key explicit: intent plus a sha1 hash of the
// room collection snapshot the suggestions were computed from.
func suggestKey(intent domain.Intent, rooms []domain.Room) string {
	b, _ := json.Marshal(rooms)
	sum := sha1.Sum(b)
	return fmt.Sprintf("suggest:%s:%s", intent, hex.EncodeToString(sum[:]))
}
