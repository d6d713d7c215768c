package registry

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/oracle"
	"github.com/Ololadestephen/EncryptedPoker/internal/store"
)

// The registry is the ResultSink for both the external oracle's callbacks
// and the local fallback. Deliveries are at-least-once: re-applied reveals
// write nothing new, and a second settlement for a hand returns the first
// outcome.

var _ oracle.ResultSink = (*Registry)(nil)

func (r *Registry) SubmitRevealedCards(ctx context.Context, tableID string, handNumber uint64, slots []int, values []game.Card) error {
	rt, err := r.runtime(tableID)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	if err := rt.table.ApplyCommunityCards(handNumber, slots, values); err != nil {
		rt.mu.Unlock()
		return err
	}
	var snap game.TableSnapshot
	advanced := rt.table.AdvancePending() == ""
	if advanced {
		rt.disarmOracleLocked()
	}
	snap = rt.table.Snapshot()
	cards := make([]string, len(values))
	for i, c := range values {
		cards[i] = c.String()
	}
	rt.buffer.Append("community_revealed", tableID, map[string]any{
		"hand_number": handNumber,
		"slots":       slots,
		"cards":       cards,
		"phase":       snap.Phase,
	})
	rt.mu.Unlock()

	r.persistSnapshot(ctx, snap)
	return nil
}

func (r *Registry) SubmitShowdown(ctx context.Context, tableID string, handNumber uint64, res oracle.ShowdownResult) error {
	rt, err := r.runtime(tableID)
	if err != nil {
		return err
	}

	now := time.Now()
	rt.mu.Lock()
	result, err := rt.table.ApplySettlement(handNumber, res.Winners, res.Payouts, res.Category, res.Board, res.Proof, now)
	if errors.Is(err, game.ErrAlreadySettled) {
		rt.mu.Unlock()
		return nil
	}
	if err != nil {
		rt.mu.Unlock()
		return err
	}
	rt.disarmOracleLocked()
	snap := rt.table.Snapshot()
	rt.buffer.Append("hand_settled", tableID, map[string]any{
		"hand_number":  handNumber,
		"winners":      result.Winners,
		"payouts":      result.Payouts,
		"winning_hand": result.WinningHand.String(),
	})
	rt.mu.Unlock()

	r.persistResult(ctx, result)
	r.persistSnapshot(ctx, snap)
	return nil
}

func (r *Registry) persistResult(ctx context.Context, res *game.GameResult) {
	community := make([]byte, len(res.CommunityCards))
	for i, c := range res.CommunityCards {
		community[i] = byte(c)
	}
	if _, err := r.store.InsertGameResult(ctx, store.ResultRecord{
		TableID:    res.TableID,
		HandNumber: res.HandNumber,
		Winners:    res.Winners,
		Payouts:    res.Payouts,
		Category:   int16(res.WinningHand),
		Community:  community,
		Proof:      res.Proof,
		ProofHash:  res.ProofHash[:],
	}); err != nil {
		log.Warn().Err(err).
			Str("table_id", res.TableID).
			Uint64("hand_number", res.HandNumber).
			Msg("result persist failed")
	}
}
