package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/store"
)

type ActionRequest struct {
	TableID  string          `json:"-"`
	PlayerID string          `json:"player_id"`
	Key      string          `json:"action_key"`
	Type     game.ActionType `json:"type"`
	Amount   int64           `json:"amount"`
}

// SubmitAction is the single mutation path for player decisions, including
// the janitor's synthetic timeout folds. Duplicate keys replay the recorded
// outcome without touching state.
func (r *Registry) SubmitAction(ctx context.Context, req ActionRequest) (game.ActionOutcome, error) {
	rt, err := r.runtime(req.TableID)
	if err != nil {
		return game.ActionOutcome{}, err
	}

	now := time.Now()
	rt.mu.Lock()
	handNumber := rt.table.HandNumber
	out, err := rt.table.Apply(game.Action{
		PlayerID: req.PlayerID,
		Key:      req.Key,
		Type:     req.Type,
		Amount:   req.Amount,
	}, now)
	if err != nil {
		rt.mu.Unlock()
		return game.ActionOutcome{}, err
	}
	var snap game.TableSnapshot
	if !out.Replayed {
		snap = rt.table.Snapshot()
		rt.buffer.Append("action_applied", req.TableID, map[string]any{
			"player_id":       req.PlayerID,
			"seat":            out.Seat,
			"type":            out.Type,
			"committed":       out.Committed,
			"street_complete": out.StreetComplete,
			"next_turn":       out.NextTurn,
		})
	}
	rt.mu.Unlock()

	if out.Replayed {
		return out, nil
	}

	r.recordAction(ctx, req, handNumber, out)
	r.persistSnapshot(ctx, snap)
	return out, nil
}

func (r *Registry) recordAction(ctx context.Context, req ActionRequest, handNumber uint64, out game.ActionOutcome) {
	if req.Key == "" {
		return
	}
	outcome, err := json.Marshal(out)
	if err != nil {
		return
	}
	if _, err := r.store.InsertActionRequest(ctx, store.ActionRecord{
		TableID:    req.TableID,
		HandNumber: handNumber,
		PlayerID:   req.PlayerID,
		ActionKey:  req.Key,
		ActionType: string(out.Type),
		Amount:     out.Committed,
		Outcome:    outcome,
	}); err != nil {
		log.Warn().Err(err).
			Str("table_id", req.TableID).
			Str("player_id", req.PlayerID).
			Str("action_key", req.Key).
			Msg("action persist failed")
	}
}
