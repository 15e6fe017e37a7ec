package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"ratepilot/internal/domain"
)

// Repo persists the room collection and the audit trail. It implements both
// domain.RoomRepository and domain.AuditLog.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) LoadRooms(ctx context.Context) ([]domain.Room, int64, error) {
	var version int64
	if err := r.db.QueryRowContext(ctx, selectVersionSQL).Scan(&version); err != nil {
		return nil, 0, fmt.Errorf("read collection version: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listRoomsSQL)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var rm domain.Room
		var pricesJSON []byte
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.CurrentPrice, &rm.Occupancy, &pricesJSON); err != nil {
			return nil, 0, err
		}
		if len(pricesJSON) > 0 {
			if err := json.Unmarshal(pricesJSON, &rm.CompetitorPrices); err != nil {
				return nil, 0, fmt.Errorf("room %s: bad competitor_prices: %w", rm.ID, err)
			}
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, version, nil
}

// SaveRooms rewrites the collection in full inside one transaction. The
// version bump doubles as the optimistic lock: a stale version leaves the
// collection untouched and returns domain.ErrVersionConflict.
func (r *Repo) SaveRooms(ctx context.Context, rooms []domain.Room, version int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, bumpVersionSQL, version)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return domain.ErrVersionConflict
	}

	if _, err := tx.ExecContext(ctx, deleteRoomsSQL); err != nil {
		return err
	}

	if len(rooms) > 0 {
		values := make([]string, 0, len(rooms))
		args := make([]any, 0, len(rooms)*5)
		for _, rm := range rooms {
			prices, _ := json.Marshal(rm.CompetitorPrices)
			values = append(values, "(?,?,?,?,?)")
			args = append(args, rm.ID, rm.Name, rm.CurrentPrice, rm.Occupancy, string(prices))
		}
		sqlStr := insertRoomsPrefix + strings.Join(values, ",")
		if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repo) UpdateCompetitorPrices(ctx context.Context, id string, prices []float64) error {
	b, _ := json.Marshal(prices)
	res, err := r.db.ExecContext(ctx, updateCompetitorPricesSQL, string(b), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) Append(ctx context.Context, e domain.AuditEntry) error {
	approvals, _ := json.Marshal(e.Approvals)
	applied := []byte("[]")
	if len(e.Applied) > 0 {
		applied, _ = json.Marshal(e.Applied)
	}
	_, err := r.db.ExecContext(ctx, insertAuditSQL,
		e.ID,
		e.CreatedAt,
		e.Operator,
		e.Prompt,
		string(e.Intent),
		string(approvals),
		string(applied),
	)
	return err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, listAuditSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var intent string
		var approvalsJSON, appliedJSON []byte
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Operator, &e.Prompt, &intent, &approvalsJSON, &appliedJSON); err != nil {
			return nil, err
		}
		e.Intent = domain.Intent(intent)
		if len(approvalsJSON) > 0 {
			if err := json.Unmarshal(approvalsJSON, &e.Approvals); err != nil {
				return nil, fmt.Errorf("audit %s: bad approvals: %w", e.ID, err)
			}
		}
		if len(appliedJSON) > 0 {
			if err := json.Unmarshal(appliedJSON, &e.Applied); err != nil {
				return nil, fmt.Errorf("audit %s: bad applied: %w", e.ID, err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
