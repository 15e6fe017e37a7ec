package app_test

import (
	"context"
	"testing"
	"time"

	"ratepilot/internal/app"
	"ratepilot/internal/domain"
)

func TestSuggestAll_ProposalsPerRoom(t *testing.T) {
	repo := &fakeRepo{rooms: testRooms(), version: 1}
	q := app.NewSuggestService(repo, &fakeAudit{}, nil, 10*time.Minute)

	out, err := q.SuggestAll(context.Background(), domain.IntentIncrease)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out.Suggestions) != 2 || len(out.Analyses) != 2 {
		t.Fatalf("expected 2 suggestions + analyses, got %d/%d", len(out.Suggestions), len(out.Analyses))
	}
	for _, rec := range out.Suggestions {
		if rec.Suggested < 20 {
			t.Fatalf("room %s: suggested %v below floor", rec.ID, rec.Suggested)
		}
		want := (rec.Suggested - rec.CurrentPrice) / rec.CurrentPrice * 100
		if rec.DeltaPct != want {
			t.Fatalf("room %s: deltaPct %v, want %v", rec.ID, rec.DeltaPct, want)
		}
		if rec.Reason == "" || len(rec.ReasonSummary) != 2 {
			t.Fatalf("room %s: missing explanation text: %+v", rec.ID, rec)
		}
	}
	if out.Analyses[0].RoomID != "A" || out.Analyses[1].RoomID != "B" {
		t.Fatalf("analyses out of order: %+v", out.Analyses)
	}
}

func TestSuggestAll_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{rooms: testRooms(), version: 1}
	cache := &fakeCache{}
	q := app.NewSuggestService(repo, &fakeAudit{}, cache, 10*time.Minute)

	first, err := q.SuggestAll(context.Background(), domain.IntentReview)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cache.sets != 1 || cache.hits != 0 {
		t.Fatalf("expected one set on miss, got sets=%d hits=%d", cache.sets, cache.hits)
	}

	second, err := q.SuggestAll(context.Background(), domain.IntentReview)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cache.hits != 1 || cache.sets != 1 {
		t.Fatalf("expected cached second read, got sets=%d hits=%d", cache.sets, cache.hits)
	}
	if second.Suggestions[0].Suggested != first.Suggestions[0].Suggested {
		t.Fatalf("cached result differs: %v vs %v", second.Suggestions[0], first.Suggestions[0])
	}
}

func TestSuggestAll_IntentChangesCacheKey(t *testing.T) {
	repo := &fakeRepo{rooms: testRooms(), version: 1}
	cache := &fakeCache{}
	q := app.NewSuggestService(repo, &fakeAudit{}, cache, 10*time.Minute)

	if _, err := q.SuggestAll(context.Background(), domain.IntentIncrease); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := q.SuggestAll(context.Background(), domain.IntentDecrease); err != nil {
		t.Fatalf("err: %v", err)
	}
	if cache.sets != 2 || cache.hits != 0 {
		t.Fatalf("intents must not share cache entries: sets=%d hits=%d", cache.sets, cache.hits)
	}
}

func TestRecentAudit_Passthrough(t *testing.T) {
	audit := &fakeAudit{}
	_ = audit.Append(context.Background(), domain.AuditEntry{ID: "e1"})
	_ = audit.Append(context.Background(), domain.AuditEntry{ID: "e2"})

	q := app.NewSuggestService(&fakeRepo{}, audit, nil, time.Minute)
	out, err := q.RecentAudit(context.Background(), 1)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0].ID != "e2" {
		t.Fatalf("expected newest entry, got %+v", out)
	}
}
