package game

// Chip ledger: the only paths that move chips between a stack and the pot.
// Total chips (stacks + pot) are conserved by every operation; TotalChips
// exists so tests can assert that after arbitrary sequences.

// commit moves amount from the seat's stack into its current-street bet and
// hand contribution, and into the pot.
func (t *Table) commit(s *Seat, amount int64) error {
	if amount < 0 {
		return ErrInvalidAction
	}
	if amount > s.Stack {
		return ErrInsufficientChips
	}
	s.Stack -= amount
	s.CurrentBet += amount
	s.TotalContributed += amount
	t.Pot += amount
	if s.Stack == 0 {
		s.AllIn = true
	}
	return nil
}

// commitCapped commits at most the seat's remaining stack. Used for forced
// bets (blinds), which may put a short stack all-in.
func (t *Table) commitCapped(s *Seat, amount int64) int64 {
	if s == nil || !s.Active {
		return 0
	}
	if amount > s.Stack {
		amount = s.Stack
	}
	_ = t.commit(s, amount)
	return amount
}

// resetStreetBets zeroes per-street bets at a street boundary. Hand
// contributions are untouched.
func (t *Table) resetStreetBets() {
	for _, s := range t.Seats {
		if s == nil {
			continue
		}
		s.CurrentBet = 0
		s.HasActed = false
	}
	t.CurrentBet = 0
	t.raiseClosed = false
}

// TotalChips is the conservation quantity: all stacks plus the outstanding
// pot.
func (t *Table) TotalChips() int64 {
	total := t.Pot
	for _, s := range t.Seats {
		if s != nil {
			total += s.Stack
		}
	}
	return total
}
