package game

// Turn sequencing. Seat order is fixed at join time; the turn advances
// strictly clockwise, skipping empty, folded and all-in seats.

func (t *Table) activeCount() int {
	n := 0
	for _, s := range t.Seats {
		if s != nil && s.Active {
			n++
		}
	}
	return n
}

// ActiveCount is the number of non-folded seats in the current hand.
func (t *Table) ActiveCount() int {
	return t.activeCount()
}

func (t *Table) canActCount() int {
	n := 0
	for _, s := range t.Seats {
		if s.CanAct() {
			n++
		}
	}
	return n
}

// nextOccupied returns the next occupied, non-busted seat clockwise from
// from, or from itself when it is the only one.
func (t *Table) nextOccupied(from int) int {
	for i := 1; i <= MaxSeats; i++ {
		idx := (from + i) % MaxSeats
		if s := t.Seats[idx]; s != nil && s.Active {
			return idx
		}
	}
	return from
}

// nextFunded returns the next seat clockwise from from that still holds
// chips. Unlike nextOccupied it ignores Active, which between hands still
// carries the previous hand's fold state.
func (t *Table) nextFunded(from int) int {
	for i := 1; i <= MaxSeats; i++ {
		idx := (from + i) % MaxSeats
		if s := t.Seats[idx]; s != nil && s.Stack > 0 {
			return idx
		}
	}
	return from
}

func (t *Table) fundedCount() int {
	n := 0
	for _, s := range t.Seats {
		if s != nil && s.Stack > 0 {
			n++
		}
	}
	return n
}

// needsAction reports whether the seat still owes a decision this street:
// it can act and either has not acted yet or has not matched the table bet.
func (t *Table) needsAction(s *Seat) bool {
	return s.CanAct() && (!s.HasActed || s.CurrentBet != t.CurrentBet)
}

// nextActor is the next seat clockwise from from that still owes a
// decision, or NoSeat.
func (t *Table) nextActor(from int) int {
	for i := 1; i <= MaxSeats; i++ {
		idx := (from + i) % MaxSeats
		if s := t.Seats[idx]; s != nil && t.needsAction(s) {
			return idx
		}
	}
	return NoSeat
}

// IsStreetComplete reports whether the current betting street is over:
// (a) at most one seat remains that can act at all, or
// (b) the turn sentinel says nobody is eligible, or
// (c) everyone required to act has acted at the current bet level.
func (t *Table) IsStreetComplete() bool {
	if !t.Phase.IsBettingPhase() {
		return false
	}
	if t.canActCount() <= 1 && t.unmatchedCanActCount() == 0 {
		return true
	}
	if t.CurrentTurn == NoSeat {
		return true
	}
	if t.PlayersActed >= t.PlayersToAct && t.unmatchedCanActCount() == 0 {
		return true
	}
	return false
}

// unmatchedCanActCount counts seats that can act but have not matched the
// table bet. A lone short all-in raise leaves such seats; the street is not
// over until they call or fold.
func (t *Table) unmatchedCanActCount() int {
	n := 0
	for _, s := range t.Seats {
		if s.CanAct() && s.CurrentBet != t.CurrentBet {
			n++
		}
	}
	return n
}
