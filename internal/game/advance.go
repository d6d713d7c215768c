package game

// Street advancement. Two triggers race to fire the same transition: a
// privileged advance call and the post-action completion check. Whichever
// claims the per-phase guard first issues the oracle request; the loser
// sees ErrAdvancePending and backs off. The guard is released by the
// matching oracle callback, or explicitly on request failure.

type AdvanceKind int

const (
	AdvanceNone AdvanceKind = iota
	AdvanceReveal
	AdvanceShowdown
	AdvanceNewHand
)

// AdvanceRequest describes the oracle round-trip (or hand reset) the table
// needs next. Slots are the community card indices to reveal.
type AdvanceRequest struct {
	Kind       AdvanceKind
	TableID    string
	HandNumber uint64
	Guard      string
	Slots      []int
}

// NextAdvance claims the guard for the next transition and returns the
// oracle request to issue. AdvanceNone means betting is still open;
// ErrAdvancePending means another caller already claimed this transition.
//
// When one non-folded seat remains the street always reads complete, so
// repeated calls fast-forward reveal by reveal to showdown: community cards
// stay populated for observers and the pot is settled without a card
// comparison.
func (t *Table) NextAdvance() (AdvanceRequest, error) {
	switch {
	case t.Phase == PhaseComplete:
		return AdvanceRequest{Kind: AdvanceNewHand, TableID: t.ID, HandNumber: t.HandNumber}, nil

	case t.Phase == PhaseShowdown:
		if t.pendingAdvance != "" {
			return AdvanceRequest{}, ErrAdvancePending
		}
		// Showdown was triggered but the settlement request needs
		// re-issuing (oracle failure path).
		t.pendingAdvance = string(PhaseShowdown)
		return AdvanceRequest{Kind: AdvanceShowdown, TableID: t.ID, HandNumber: t.HandNumber, Guard: string(PhaseShowdown)}, nil

	case t.Phase.IsBettingPhase():
		if t.pendingAdvance != "" {
			return AdvanceRequest{}, ErrAdvancePending
		}
		if !t.IsStreetComplete() {
			return AdvanceRequest{Kind: AdvanceNone}, nil
		}
		if t.Phase == PhaseRiver {
			t.Phase = PhaseShowdown
			t.CurrentTurn = NoSeat
			t.pendingAdvance = string(PhaseShowdown)
			return AdvanceRequest{Kind: AdvanceShowdown, TableID: t.ID, HandNumber: t.HandNumber, Guard: string(PhaseShowdown)}, nil
		}
		next, _ := nextPhase(t.Phase)
		t.pendingAdvance = string(next)
		return AdvanceRequest{
			Kind:       AdvanceReveal,
			TableID:    t.ID,
			HandNumber: t.HandNumber,
			Guard:      string(next),
			Slots:      revealSlots(t.Phase),
		}, nil
	}
	return AdvanceRequest{Kind: AdvanceNone}, nil
}

// ReleaseAdvance frees a claimed guard after a failed oracle request so a
// later caller can retry the transition.
func (t *Table) ReleaseAdvance(guard string) {
	if t.pendingAdvance == guard {
		t.pendingAdvance = ""
	}
}

// completeStreetTo performs the phase transition a reveal callback
// finishes: street bets reset, counters rearmed, first actor chosen
// clockwise from the dealer.
func (t *Table) completeStreetTo(next GamePhase) {
	t.Phase = next
	t.resetStreetBets()
	t.PlayersActed = 0
	t.PlayersToAct = t.canActCount()
	if t.PlayersToAct <= 1 {
		t.CurrentTurn = NoSeat
	} else {
		t.CurrentTurn = t.nextActor(t.DealerSeat)
	}
	t.pendingAdvance = ""
}
