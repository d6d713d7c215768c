package registry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/oracle"
)

// AdvanceStatus reports what a street-advance request set in motion.
type AdvanceStatus struct {
	Kind       string         `json:"kind"` // reveal | showdown | new_hand
	HandNumber uint64         `json:"hand_number"`
	Phase      game.GamePhase `json:"phase"`
	Slots      []int          `json:"slots,omitempty"`
}

// RequestStreetAdvance claims the next table transition and issues the
// oracle round-trip for it. The oracle request is sent outside the table
// lock; on send failure the claimed guard is released so a later call can
// retry.
func (r *Registry) RequestStreetAdvance(ctx context.Context, tableID string) (AdvanceStatus, error) {
	rt, err := r.runtime(tableID)
	if err != nil {
		return AdvanceStatus{}, err
	}

	now := time.Now()
	rt.mu.Lock()
	req, err := rt.table.NextAdvance()
	if err != nil {
		rt.mu.Unlock()
		return AdvanceStatus{}, err
	}

	switch req.Kind {
	case game.AdvanceNone:
		rt.mu.Unlock()
		return AdvanceStatus{}, game.ErrBettingNotComplete

	case game.AdvanceNewHand:
		if err := rt.table.NextHand(now); err != nil {
			rt.mu.Unlock()
			return AdvanceStatus{}, err
		}
		snap := rt.table.Snapshot()
		rt.buffer.Append("hand_started", tableID, map[string]any{
			"hand_number":  snap.HandNumber,
			"dealer_seat":  snap.DealerSeat,
			"current_turn": snap.CurrentTurn,
		})
		rt.mu.Unlock()
		r.persistSnapshot(ctx, snap)
		return AdvanceStatus{Kind: "new_hand", HandNumber: snap.HandNumber, Phase: snap.Phase}, nil

	case game.AdvanceReveal:
		oreq := oracle.RevealRequest{TableID: req.TableID, HandNumber: req.HandNumber, Slots: req.Slots}
		rt.armOracleLocked(req, now.Add(r.cfg.OracleFallbackAfter))
		phase := rt.table.Phase
		rt.mu.Unlock()
		if err := r.dealer.RequestReveal(ctx, oreq); err != nil {
			r.releaseAdvance(rt, req.Guard)
			return AdvanceStatus{}, err
		}
		return AdvanceStatus{Kind: "reveal", HandNumber: req.HandNumber, Phase: phase, Slots: req.Slots}, nil

	case game.AdvanceShowdown:
		oreq := showdownRequestLocked(rt.table)
		rt.armOracleLocked(req, now.Add(r.cfg.OracleFallbackAfter))
		rt.buffer.Append("showdown_requested", tableID, map[string]any{"hand_number": req.HandNumber})
		rt.mu.Unlock()
		if err := r.dealer.RequestShowdown(ctx, oreq); err != nil {
			r.releaseAdvance(rt, req.Guard)
			return AdvanceStatus{}, err
		}
		return AdvanceStatus{Kind: "showdown", HandNumber: req.HandNumber, Phase: game.PhaseShowdown}, nil
	}

	rt.mu.Unlock()
	return AdvanceStatus{}, game.ErrBettingNotComplete
}

func (rt *tableRuntime) armOracleLocked(req game.AdvanceRequest, deadline time.Time) {
	rt.pending = req
	rt.oracleDeadline = deadline
	rt.fallbackUsed = false
}

func (rt *tableRuntime) disarmOracleLocked() {
	rt.pending = game.AdvanceRequest{}
	rt.oracleDeadline = time.Time{}
	rt.fallbackUsed = false
}

func (r *Registry) releaseAdvance(rt *tableRuntime, guard string) {
	rt.mu.Lock()
	tableID := rt.table.ID
	rt.table.ReleaseAdvance(guard)
	rt.disarmOracleLocked()
	rt.mu.Unlock()
	log.Warn().Str("table_id", tableID).Str("guard", guard).Msg("oracle request failed, guard released")
}

// showdownRequestLocked builds the evaluation request from the live table.
// Caller holds rt.mu.
func showdownRequestLocked(t *game.Table) oracle.ShowdownRequest {
	seats := make([]oracle.SeatInfo, 0, game.MaxSeats)
	for _, s := range t.Seats {
		if s == nil {
			continue
		}
		seats = append(seats, oracle.SeatInfo{
			Seat:             s.Index,
			PlayerID:         s.PlayerID,
			Active:           s.Active,
			TotalContributed: s.TotalContributed,
		})
	}
	return oracle.ShowdownRequest{
		TableID:    t.ID,
		HandNumber: t.HandNumber,
		Board:      t.Community,
		Pot:        t.Pot,
		Seats:      seats,
	}
}
