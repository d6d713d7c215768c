package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// InsertGameResult appends a settlement row. Returns false when the hand is
// already settled; the history is append-only and never updated.
func (s *Store) InsertGameResult(ctx context.Context, rec ResultRecord) (bool, error) {
	if s == nil {
		return true, nil
	}
	tag, err := s.Pool.Exec(ctx, `
		INSERT INTO game_results (table_id, hand_number, winners, payouts, category, community, proof, proof_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (table_id, hand_number) DO NOTHING`,
		rec.TableID, int64(rec.HandNumber), rec.Winners, rec.Payouts, rec.Category, rec.Community, rec.Proof, rec.ProofHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) GetGameResult(ctx context.Context, tableID string, handNumber uint64) (ResultRecord, error) {
	var rec ResultRecord
	if s == nil {
		return rec, ErrNotFound
	}
	var hand int64
	err := s.Pool.QueryRow(ctx, `
		SELECT table_id, hand_number, winners, payouts, category, community, proof, proof_hash, created_at
		FROM game_results WHERE table_id = $1 AND hand_number = $2`,
		tableID, int64(handNumber)).
		Scan(&rec.TableID, &hand, &rec.Winners, &rec.Payouts, &rec.Category, &rec.Community, &rec.Proof, &rec.ProofHash, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, ErrNotFound
	}
	rec.HandNumber = uint64(hand)
	return rec, err
}

func (s *Store) ListGameResults(ctx context.Context, tableID string, limit int) ([]ResultRecord, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT table_id, hand_number, winners, payouts, category, community, proof, proof_hash, created_at
		FROM game_results WHERE table_id = $1 ORDER BY hand_number DESC LIMIT $2`,
		tableID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ResultRecord, 0, limit)
	for rows.Next() {
		var rec ResultRecord
		var hand int64
		if err := rows.Scan(&rec.TableID, &hand, &rec.Winners, &rec.Payouts, &rec.Category, &rec.Community, &rec.Proof, &rec.ProofHash, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.HandNumber = uint64(hand)
		out = append(out, rec)
	}
	return out, rows.Err()
}
