package game

// validateAction checks every precondition for a player action without
// mutating anything. Each failure is a distinct error; callers can rely on
// the table being untouched when one is returned.
func (t *Table) validateAction(s *Seat, a Action) error {
	if !t.Phase.IsBettingPhase() {
		return ErrWrongPhase
	}
	if t.pendingAdvance != "" {
		return ErrAdvancePending
	}
	if s == nil {
		return ErrUnknownPlayer
	}
	if !s.Active || s.AllIn {
		return ErrInvalidActor
	}
	if t.CurrentTurn == NoSeat || t.CurrentTurn != s.Index {
		return ErrNotYourTurn
	}

	switch a.Type {
	case ActionFold, ActionAllIn:
		return nil
	case ActionCheck:
		if s.CurrentBet != t.CurrentBet {
			return ErrMustCallOrFold
		}
		return nil
	case ActionCall:
		return nil
	case ActionRaise:
		if a.Amount < t.BigBlind {
			return ErrRaiseTooSmall
		}
		if t.raiseClosed && s.HasActed {
			// A short all-in closed the betting; seats that already
			// matched a full raise may only call or fold.
			return ErrInvalidAction
		}
		need := (t.CurrentBet - s.CurrentBet) + a.Amount
		if need > s.Stack {
			return ErrInsufficientChips
		}
		return nil
	default:
		return ErrInvalidAction
	}
}
