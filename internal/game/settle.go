package game

import (
	"crypto/sha256"
	"time"
)

// GameResult is the settlement record for one hand. Created exactly once
// per hand number; the proof blob is the oracle's attestation, stored and
// exposed but never verified here.
type GameResult struct {
	TableID        string       `json:"table_id"`
	HandNumber     uint64       `json:"hand_number"`
	Winners        []string     `json:"winners"`
	Payouts        []int64      `json:"payouts"`
	WinningHand    HandCategory `json:"winning_hand"`
	CommunityCards [5]Card      `json:"community_cards"`
	Participants   []string     `json:"participants"`
	Proof          []byte       `json:"proof,omitempty"`
	ProofHash      [32]byte     `json:"proof_hash"`
	Timestamp      time.Time    `json:"timestamp"`
}

// ApplyCommunityCards writes oracle-revealed cards into the board. Only
// sentinel slots are written, so re-delivery of the same reveal is a no-op;
// a hand-number mismatch is rejected as stale. When the reveal finishes a
// claimed street transition, the phase advances and street bets reset.
func (t *Table) ApplyCommunityCards(handNumber uint64, slots []int, values []Card) error {
	if handNumber != t.HandNumber {
		return ErrStaleCallback
	}
	if len(slots) != len(values) {
		return ErrInvalidCard
	}
	for i, slot := range slots {
		if slot < 0 || slot >= len(t.Community) || !values[i].Valid() {
			return ErrInvalidCard
		}
	}
	for i, slot := range slots {
		if t.Community[slot] == NoCard {
			t.Community[slot] = values[i]
		}
	}

	if guard := GamePhase(t.pendingAdvance); guard.IsBettingPhase() {
		if t.revealDoneFor(guard) {
			t.completeStreetTo(guard)
		}
	}
	return nil
}

// revealDoneFor reports whether every slot the transition into phase needs
// has been revealed.
func (t *Table) revealDoneFor(next GamePhase) bool {
	var prev GamePhase
	switch next {
	case PhaseFlop:
		prev = PhasePreFlop
	case PhaseTurn:
		prev = PhaseFlop
	case PhaseRiver:
		prev = PhaseTurn
	default:
		return false
	}
	for _, slot := range revealSlots(prev) {
		if t.Community[slot] == NoCard {
			return false
		}
	}
	return true
}

// ApplySettlement applies the oracle's showdown outcome: validates shape,
// winner eligibility and chip conservation, credits payouts, records the
// GameResult and moves the table to Complete. A duplicate settlement for
// the same hand returns the existing result untouched. A conservation or
// eligibility failure mutates nothing.
func (t *Table) ApplySettlement(handNumber uint64, winners []string, payouts []int64, category HandCategory, finalBoard [5]Card, proof []byte, now time.Time) (*GameResult, error) {
	if handNumber != t.HandNumber {
		return nil, ErrStaleCallback
	}
	if existing := t.ResultFor(handNumber); existing != nil {
		return existing, ErrAlreadySettled
	}
	if t.Phase != PhaseShowdown {
		return nil, ErrWrongPhase
	}
	if len(winners) == 0 || len(winners) != len(payouts) || len(winners) > MaxSeats {
		return nil, ErrInvalidPayoutDistribution
	}

	var sum int64
	for _, p := range payouts {
		if p < 0 {
			return nil, ErrInvalidPayoutDistribution
		}
		sum += p
	}
	if sum != t.Pot {
		return nil, ErrInvalidPayoutDistribution
	}

	layers := ComputePots(t.Seats[:])
	maxWin := entitlements(layers)
	winnerSeats := make([]*Seat, len(winners))
	seen := map[string]bool{}
	for i, id := range winners {
		if seen[id] {
			return nil, ErrInvalidPayoutDistribution
		}
		seen[id] = true
		s := t.seatByPlayer(id)
		if s == nil || !s.Active {
			return nil, ErrInvalidPayoutDistribution
		}
		if payouts[i] > maxWin[s.Index] {
			// Paid out of a layer this seat is not eligible for.
			return nil, ErrInvalidPayoutDistribution
		}
		winnerSeats[i] = s
	}

	// Validation passed; from here the whole transition applies.
	for i, s := range winnerSeats {
		s.Stack += payouts[i]
	}
	t.Pot = 0
	t.SidePots = layers

	for i, c := range finalBoard {
		if t.Community[i] == NoCard && c.Valid() {
			t.Community[i] = c
		}
	}

	result := &GameResult{
		TableID:        t.ID,
		HandNumber:     handNumber,
		Winners:        append([]string(nil), winners...),
		Payouts:        append([]int64(nil), payouts...),
		WinningHand:    category,
		CommunityCards: t.Community,
		Participants:   t.participants(),
		Proof:          append([]byte(nil), proof...),
		ProofHash:      sha256.Sum256(proof),
		Timestamp:      now,
	}
	t.results = append(t.results, result)

	t.Phase = PhaseComplete
	t.CurrentTurn = NoSeat
	t.pendingAdvance = ""
	t.LastActionAt = now
	return result, nil
}

func (t *Table) participants() []string {
	out := make([]string, 0, MaxSeats)
	for _, s := range t.Seats {
		if s != nil {
			out = append(out, s.PlayerID)
		}
	}
	return out
}
