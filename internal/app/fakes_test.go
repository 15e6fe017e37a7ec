package app_test

import (
	"context"

	"ratepilot/internal/app"
	"ratepilot/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	rooms   []domain.Room
	version int64

	loadCalls int
	saveCalls int
	saved     []domain.Room
	savedVer  int64
	saveErr   error
}

func (f *fakeRepo) LoadRooms(ctx context.Context) ([]domain.Room, int64, error) {
	f.loadCalls++
	out := make([]domain.Room, len(f.rooms))
	copy(out, f.rooms)
	return out, f.version, nil
}

func (f *fakeRepo) SaveRooms(ctx context.Context, rooms []domain.Room, version int64) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = rooms
	f.savedVer = version
	f.rooms = rooms
	f.version++
	return nil
}

func (f *fakeRepo) UpdateCompetitorPrices(ctx context.Context, id string, prices []float64) error {
	return nil
}

type fakeAudit struct {
	entries   []domain.AuditEntry
	appendErr error
}

func (f *fakeAudit) Append(ctx context.Context, e domain.AuditEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAudit) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	out := make([]domain.AuditEntry, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

type fakeCache struct {
	store      map[string]any
	hits, sets int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*app.SuggestResult); ok {
		*d = v.(app.SuggestResult)
	}
	c.hits++
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func testRooms() []domain.Room {
	return []domain.Room{
		{ID: "A", Name: "Standard", CurrentPrice: 100, Occupancy: 0.6, CompetitorPrices: []float64{110, 90}},
		{ID: "B", Name: "Deluxe", CurrentPrice: 160, Occupancy: 0.8, CompetitorPrices: []float64{150, 170}},
	}
}
