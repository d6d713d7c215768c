package game

import "time"

type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "allin"
)

// Action is one player decision. Key is the caller-supplied idempotency key,
// unique per (hand, player, sequence); Amount is the raise increment above
// the table's current bet, not an absolute target.
type Action struct {
	PlayerID string
	Key      string
	Type     ActionType
	Amount   int64
}

// ActionOutcome is what an applied (or replayed) action produced.
type ActionOutcome struct {
	Key            string    `json:"key"`
	Seat           int       `json:"seat"`
	Type           ActionType `json:"type"`
	Committed      int64     `json:"committed"`
	StreetComplete bool      `json:"street_complete"`
	NextTurn       int       `json:"next_turn"`
	Phase          GamePhase `json:"phase"`
	Replayed       bool      `json:"replayed"`
}

// Apply validates and applies a single action. It is the sole per-action
// mutator. Replays of an already-applied key return the recorded outcome
// without touching state. On any error the table is unchanged.
func (t *Table) Apply(a Action, now time.Time) (ActionOutcome, error) {
	s := t.seatByPlayer(a.PlayerID)

	if a.Key != "" {
		if prev, ok := t.seenActions[a.PlayerID+"/"+a.Key]; ok {
			prev.Replayed = true
			return prev, nil
		}
	}

	if err := t.validateAction(s, a); err != nil {
		return ActionOutcome{}, err
	}

	t.drainTimeBank(s, now)

	var committed int64
	switch a.Type {
	case ActionFold:
		s.Active = false

	case ActionCheck:
		t.PlayersActed++

	case ActionCall:
		need := t.CurrentBet - s.CurrentBet
		if need < 0 {
			need = 0
		}
		committed = min64(need, s.Stack)
		if err := t.commit(s, committed); err != nil {
			return ActionOutcome{}, err
		}
		if !s.AllIn {
			t.PlayersActed++
		}

	case ActionRaise:
		committed = (t.CurrentBet - s.CurrentBet) + a.Amount
		if err := t.commit(s, committed); err != nil {
			return ActionOutcome{}, err
		}
		t.CurrentBet = s.CurrentBet
		t.raiseClosed = false
		// Everyone else must act again at the new level.
		t.PlayersActed = 1

	case ActionAllIn:
		committed = s.Stack
		if err := t.commit(s, committed); err != nil {
			return ActionOutcome{}, err
		}
		if s.CurrentBet > t.CurrentBet {
			if s.CurrentBet-t.CurrentBet >= t.BigBlind {
				// A full raise: betting reopens.
				t.raiseClosed = false
				t.PlayersActed = 1
			} else {
				// Short all-in: the bet rises but seats that already
				// matched get the option to call only.
				t.raiseClosed = true
			}
			t.CurrentBet = s.CurrentBet
		}
	}

	s.HasActed = true
	s.ActionSeq++
	t.PlayersToAct = t.canActCount()
	t.LastActionAt = now

	complete := t.IsStreetComplete()
	if complete {
		t.CurrentTurn = NoSeat
	} else {
		t.CurrentTurn = t.nextActor(s.Index)
		if t.CurrentTurn == NoSeat {
			complete = true
		}
	}

	out := ActionOutcome{
		Key:            a.Key,
		Seat:           s.Index,
		Type:           a.Type,
		Committed:      committed,
		StreetComplete: complete,
		NextTurn:       t.CurrentTurn,
		Phase:          t.Phase,
	}
	if a.Key != "" {
		t.seenActions[a.PlayerID+"/"+a.Key] = out
	}
	return out, nil
}

// drainTimeBank charges time spent beyond the base action window against
// the seat's time bank. Exhaustion is enforced outside the engine, by the
// registry janitor folding the seat through this same Apply path.
func (t *Table) drainTimeBank(s *Seat, now time.Time) {
	if t.LastActionAt.IsZero() || now.Before(t.LastActionAt) {
		return
	}
	over := now.Sub(t.LastActionAt) - t.TimeBank
	if over <= 0 {
		return
	}
	s.TimeBank -= over
	if s.TimeBank < 0 {
		s.TimeBank = 0
	}
}

// TimeBankExpired reports whether the seat on turn has run out of both the
// base window and its time bank as of now.
func (t *Table) TimeBankExpired(now time.Time) (int, bool) {
	if !t.Phase.IsBettingPhase() || t.pendingAdvance != "" || t.CurrentTurn == NoSeat {
		return NoSeat, false
	}
	s := t.Seats[t.CurrentTurn]
	if s == nil {
		return NoSeat, false
	}
	deadline := t.LastActionAt.Add(t.TimeBank + s.TimeBank)
	if now.After(deadline) {
		return t.CurrentTurn, true
	}
	return NoSeat, false
}
