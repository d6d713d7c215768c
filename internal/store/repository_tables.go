package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) SaveTable(ctx context.Context, rec TableRecord) error {
	if s == nil {
		return nil
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO tables (id, name, creator, small_blind, big_blind, phase, hand_number, pot, snapshot, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (id) DO UPDATE SET
			phase = EXCLUDED.phase,
			hand_number = EXCLUDED.hand_number,
			pot = EXCLUDED.pot,
			snapshot = EXCLUDED.snapshot,
			updated_at = now()`,
		rec.ID, rec.Name, rec.Creator, rec.SmallBlind, rec.BigBlind, rec.Phase, int64(rec.HandNumber), rec.Pot, rec.Snapshot)
	return err
}

func (s *Store) GetTable(ctx context.Context, id string) (TableRecord, error) {
	var rec TableRecord
	if s == nil {
		return rec, ErrNotFound
	}
	var handNumber int64
	err := s.Pool.QueryRow(ctx, `
		SELECT id, name, creator, small_blind, big_blind, phase, hand_number, pot, snapshot, updated_at
		FROM tables WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Name, &rec.Creator, &rec.SmallBlind, &rec.BigBlind, &rec.Phase, &handNumber, &rec.Pot, &rec.Snapshot, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, ErrNotFound
	}
	rec.HandNumber = uint64(handNumber)
	return rec, err
}

func (s *Store) ListTables(ctx context.Context, limit int) ([]TableRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, creator, small_blind, big_blind, phase, hand_number, pot, snapshot, updated_at
		FROM tables ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]TableRecord, 0, limit)
	for rows.Next() {
		var rec TableRecord
		var handNumber int64
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Creator, &rec.SmallBlind, &rec.BigBlind, &rec.Phase, &handNumber, &rec.Pot, &rec.Snapshot, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.HandNumber = uint64(handNumber)
		out = append(out, rec)
	}
	return out, rows.Err()
}
