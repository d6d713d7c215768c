package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/oracle"
)

// StartJanitor runs the background sweep until ctx is cancelled. Each tick
// it folds seats whose time bank ran out and re-issues stuck oracle
// round-trips to the fallback dealer.
func (r *Registry) StartJanitor(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.SweepInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				r.sweep(ctx, now)
			}
		}
	}()
}

func (r *Registry) sweep(ctx context.Context, now time.Time) {
	// Stuck round-trips get their fallback before fresh transitions are
	// claimed, so a claim made this tick is not judged against this tick's
	// deadline check.
	for _, rt := range r.runtimes() {
		r.sweepTimeouts(ctx, rt, now)
		r.sweepOracle(ctx, rt, now)
		r.sweepAdvance(ctx, rt)
	}
}

// sweepAdvance claims street transitions nobody requested explicitly: once
// betting closes the table must not sit waiting for a client to call the
// advance endpoint. The per-phase guard arbitrates this against manual
// advance calls, so losing the race is a silent no-op. Hand rotation out of
// Complete stays caller-driven.
func (r *Registry) sweepAdvance(ctx context.Context, rt *tableRuntime) {
	rt.mu.Lock()
	tableID := rt.table.ID
	due := rt.table.AdvancePending() == "" &&
		((rt.table.Phase.IsBettingPhase() && rt.table.IsStreetComplete()) ||
			rt.table.Phase == game.PhaseShowdown)
	rt.mu.Unlock()
	if !due {
		return
	}

	_, err := r.RequestStreetAdvance(ctx, tableID)
	if err != nil && !errors.Is(err, game.ErrAdvancePending) && !errors.Is(err, game.ErrBettingNotComplete) {
		log.Warn().Err(err).Str("table_id", tableID).Msg("auto advance failed")
	}
}

// sweepTimeouts folds the seat on turn once its base window and time bank
// are both spent. The fold goes through SubmitAction with a deterministic
// key, so a racing player action or a duplicate sweep loses cleanly.
func (r *Registry) sweepTimeouts(ctx context.Context, rt *tableRuntime, now time.Time) {
	rt.mu.Lock()
	seat, expired := rt.table.TimeBankExpired(now)
	if !expired {
		rt.mu.Unlock()
		return
	}
	s := rt.table.Seats[seat]
	tableID := rt.table.ID
	req := ActionRequest{
		TableID:  tableID,
		PlayerID: s.PlayerID,
		Key:      fmt.Sprintf("timeout:%d:%d:%d", rt.table.HandNumber, seat, s.ActionSeq),
		Type:     game.ActionFold,
	}
	rt.mu.Unlock()

	out, err := r.SubmitAction(ctx, req)
	if err != nil {
		// The player acted between the check and the fold, or the street
		// advanced. Nothing to do.
		return
	}
	if !out.Replayed {
		log.Info().
			Str("table_id", tableID).
			Str("player_id", req.PlayerID).
			Int("seat", seat).
			Msg("seat folded on timeout")
	}
}

// sweepOracle re-issues an outstanding advance request to the fallback
// dealer when the primary has been silent past the deadline. The fallback
// delivers through the same sink, so whichever answer lands first wins.
func (r *Registry) sweepOracle(ctx context.Context, rt *tableRuntime, now time.Time) {
	if r.fallback == nil {
		return
	}
	rt.mu.Lock()
	if rt.oracleDeadline.IsZero() || now.Before(rt.oracleDeadline) || rt.fallbackUsed {
		rt.mu.Unlock()
		return
	}
	rt.fallbackUsed = true
	req := rt.pending
	var sreq oracle.ShowdownRequest
	if req.Kind == game.AdvanceShowdown {
		sreq = showdownRequestLocked(rt.table)
	}
	rt.mu.Unlock()

	var err error
	switch req.Kind {
	case game.AdvanceReveal:
		err = r.fallback.RequestReveal(ctx, oracle.RevealRequest{
			TableID:    req.TableID,
			HandNumber: req.HandNumber,
			Slots:      req.Slots,
		})
	case game.AdvanceShowdown:
		err = r.fallback.RequestShowdown(ctx, sreq)
	default:
		return
	}
	if err != nil {
		log.Error().Err(err).
			Str("table_id", req.TableID).
			Uint64("hand_number", req.HandNumber).
			Msg("oracle fallback request failed")
		return
	}
	log.Warn().
		Str("table_id", req.TableID).
		Uint64("hand_number", req.HandNumber).
		Str("guard", req.Guard).
		Msg("oracle deadline passed, fallback engaged")
}
