package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// InsertActionRequest records an applied action. Returns false when the
// idempotency key already exists for the (table, hand, player).
func (s *Store) InsertActionRequest(ctx context.Context, rec ActionRecord) (bool, error) {
	if s == nil {
		return true, nil
	}
	tag, err := s.Pool.Exec(ctx, `
		INSERT INTO hand_actions (table_id, hand_number, player_id, action_key, action_type, amount, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (table_id, hand_number, player_id, action_key) DO NOTHING`,
		rec.TableID, int64(rec.HandNumber), rec.PlayerID, rec.ActionKey, rec.ActionType, rec.Amount, rec.Outcome)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) GetActionRequest(ctx context.Context, tableID string, handNumber uint64, playerID, actionKey string) (ActionRecord, error) {
	var rec ActionRecord
	if s == nil {
		return rec, ErrNotFound
	}
	var hand int64
	err := s.Pool.QueryRow(ctx, `
		SELECT table_id, hand_number, player_id, action_key, action_type, amount, outcome, created_at
		FROM hand_actions
		WHERE table_id = $1 AND hand_number = $2 AND player_id = $3 AND action_key = $4`,
		tableID, int64(handNumber), playerID, actionKey).
		Scan(&rec.TableID, &hand, &rec.PlayerID, &rec.ActionKey, &rec.ActionType, &rec.Amount, &rec.Outcome, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, ErrNotFound
	}
	rec.HandNumber = uint64(hand)
	return rec, err
}
