package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "ratepilot/internal/adapters/redis"
	"ratepilot/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	rec := domain.Recommendation{ID: "A", Suggested: 105, DeltaPct: 5}
	if err := c.Set(ctx, "suggest:test", rec, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Recommendation
	ok, err := c.Get(ctx, "suggest:test", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.ID != "A" || got.Suggested != 105 {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := c.Del(ctx, "suggest:test"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "suggest:test", &got)
	if err != nil || ok {
		t.Fatalf("expected miss after del, ok=%v err=%v", ok, err)
	}
}

func TestCache_MissIsNotAnError(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var dst domain.Recommendation
	ok, err := c.Get(context.Background(), "nope", &dst)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}
