package domain

import "context"

type RoomRepository interface {
	// LoadRooms returns the full collection plus its version counter.
	LoadRooms(ctx context.Context) ([]Room, int64, error)
	// SaveRooms rewrites the collection in full. version must match the
	// value returned by the LoadRooms this write derives from, otherwise
	// ErrVersionConflict.
	SaveRooms(ctx context.Context, rooms []Room, version int64) error
	// UpdateCompetitorPrices refreshes one room's competitor rate snapshot.
	UpdateCompetitorPrices(ctx context.Context, id string, prices []float64) error
}

type AuditLog interface {
	Append(ctx context.Context, e AuditEntry) error
	Recent(ctx context.Context, limit int) ([]AuditEntry, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
