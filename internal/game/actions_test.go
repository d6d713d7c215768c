package game

import (
	"testing"
	"time"
)

func mustApply(t *testing.T, tb *Table, a Action) ActionOutcome {
	t.Helper()
	out, err := tb.Apply(a, t0)
	if err != nil {
		t.Fatalf("Apply(%s %s) error = %v", a.PlayerID, a.Type, err)
	}
	return out
}

func TestPreflopCallCallCheckCompletes(t *testing.T) {
	tb := startedTable(t, 3)

	out := mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	if out.Committed != 20 || out.StreetComplete {
		t.Fatalf("p0 call outcome = %+v", out)
	}
	out = mustApply(t, tb, Action{PlayerID: "p1", Type: ActionCall})
	if out.Committed != 10 || out.StreetComplete {
		t.Fatalf("p1 call outcome = %+v", out)
	}
	// Big blind already matches the bet but still owes its option.
	if tb.CurrentTurn != 2 {
		t.Fatalf("turn = %d, want big blind seat 2", tb.CurrentTurn)
	}
	out = mustApply(t, tb, Action{PlayerID: "p2", Type: ActionCheck})
	if !out.StreetComplete || out.NextTurn != NoSeat {
		t.Fatalf("big blind check outcome = %+v", out)
	}
	if tb.Pot != 60 || tb.TotalChips() != 3*DefaultStartingChips {
		t.Fatalf("pot=%d total=%d after street", tb.Pot, tb.TotalChips())
	}
}

func TestCheckBehindBetIsRejected(t *testing.T) {
	tb := startedTable(t, 3)
	if _, err := tb.Apply(Action{PlayerID: "p0", Type: ActionCheck}, t0); err != ErrMustCallOrFold {
		t.Fatalf("check behind bet error = %v, want %v", err, ErrMustCallOrFold)
	}
}

func TestOutOfTurnRejected(t *testing.T) {
	tb := startedTable(t, 3)
	if _, err := tb.Apply(Action{PlayerID: "p1", Type: ActionCall}, t0); err != ErrNotYourTurn {
		t.Fatalf("out of turn error = %v, want %v", err, ErrNotYourTurn)
	}
	if _, err := tb.Apply(Action{PlayerID: "ghost", Type: ActionCall}, t0); err != ErrUnknownPlayer {
		t.Fatalf("unknown player error = %v, want %v", err, ErrUnknownPlayer)
	}
}

func TestRaiseReopensBetting(t *testing.T) {
	tb := startedTable(t, 3)

	mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	out := mustApply(t, tb, Action{PlayerID: "p1", Type: ActionRaise, Amount: 40})
	if out.StreetComplete {
		t.Fatalf("raise closed street: %+v", out)
	}
	if tb.CurrentBet != 60 {
		t.Fatalf("table bet = %d, want 60", tb.CurrentBet)
	}
	// p0 already acted but is unmatched again.
	mustApply(t, tb, Action{PlayerID: "p2", Type: ActionCall})
	out = mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	if !out.StreetComplete {
		t.Fatalf("street open after everyone matched: %+v", out)
	}
	if tb.Pot != 180 {
		t.Fatalf("pot = %d, want 180", tb.Pot)
	}
}

func TestRaiseBelowBigBlindRejected(t *testing.T) {
	tb := startedTable(t, 3)
	if _, err := tb.Apply(Action{PlayerID: "p0", Type: ActionRaise, Amount: 19}, t0); err != ErrRaiseTooSmall {
		t.Fatalf("small raise error = %v, want %v", err, ErrRaiseTooSmall)
	}
}

func TestRaiseBeyondStackRejected(t *testing.T) {
	tb := startedTable(t, 3)
	tb.Seats[0].Stack = 30
	if _, err := tb.Apply(Action{PlayerID: "p0", Type: ActionRaise, Amount: 40}, t0); err != ErrInsufficientChips {
		t.Fatalf("overbet error = %v, want %v", err, ErrInsufficientChips)
	}
}

func TestFoldRemovesSeatFromHand(t *testing.T) {
	tb := startedTable(t, 3)
	out := mustApply(t, tb, Action{PlayerID: "p0", Type: ActionFold})
	if tb.Seats[0].Active {
		t.Fatal("folded seat still active")
	}
	if tb.Seats[0].Stack != DefaultStartingChips {
		t.Fatalf("folded stack = %d, want untouched", tb.Seats[0].Stack)
	}
	if out.StreetComplete {
		t.Fatalf("street complete with blinds unresolved: %+v", out)
	}
}

func TestFoldToOneCompletesStreet(t *testing.T) {
	tb := startedTable(t, 2)
	out := mustApply(t, tb, Action{PlayerID: "p0", Type: ActionFold})
	if !out.StreetComplete {
		t.Fatalf("expected street complete with one contender: %+v", out)
	}
	if tb.ActiveCount() != 1 {
		t.Fatalf("active = %d, want 1", tb.ActiveCount())
	}
}

func TestActionReplayIsIdempotent(t *testing.T) {
	tb := startedTable(t, 3)

	first := mustApply(t, tb, Action{PlayerID: "p0", Key: "a1", Type: ActionCall})
	potAfter := tb.Pot
	replay := mustApply(t, tb, Action{PlayerID: "p0", Key: "a1", Type: ActionCall})

	if !replay.Replayed {
		t.Fatal("expected replayed outcome")
	}
	if replay.Seat != first.Seat || replay.Committed != first.Committed || replay.NextTurn != first.NextTurn {
		t.Fatalf("replay %+v differs from first %+v", replay, first)
	}
	if tb.Pot != potAfter {
		t.Fatalf("pot moved on replay: %d != %d", tb.Pot, potAfter)
	}
	// Same key, different player: applies independently.
	if tb.CurrentTurn != 1 {
		t.Fatalf("turn = %d, want 1", tb.CurrentTurn)
	}
	out := mustApply(t, tb, Action{PlayerID: "p1", Key: "a1", Type: ActionCall})
	if out.Replayed {
		t.Fatal("key must be scoped per player")
	}
}

func TestShortAllInClosesRaising(t *testing.T) {
	tb := startedTable(t, 3)

	mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	tb.Seats[1].Stack = 25
	out := mustApply(t, tb, Action{PlayerID: "p1", Type: ActionAllIn})
	if out.Committed != 25 {
		t.Fatalf("all-in committed = %d, want 25", out.Committed)
	}
	// Blind 10 + stack 25 = 35: above the bet but under a full raise.
	if tb.CurrentBet != 35 {
		t.Fatalf("table bet = %d, want 35", tb.CurrentBet)
	}

	// Big blind has not acted voluntarily yet, so it may still raise.
	mustApply(t, tb, Action{PlayerID: "p2", Type: ActionCall})

	// p0 already matched a full bet; the short all-in only reopens a call.
	if _, err := tb.Apply(Action{PlayerID: "p0", Type: ActionRaise, Amount: 40}, t0); err != ErrInvalidAction {
		t.Fatalf("raise after short all-in error = %v, want %v", err, ErrInvalidAction)
	}
	out = mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	if !out.StreetComplete {
		t.Fatalf("street open after call: %+v", out)
	}
}

func TestFullAllInReopensBetting(t *testing.T) {
	tb := startedTable(t, 3)

	mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	tb.Seats[1].Stack = 100
	mustApply(t, tb, Action{PlayerID: "p1", Type: ActionAllIn})
	if tb.CurrentBet != 110 {
		t.Fatalf("table bet = %d, want 110", tb.CurrentBet)
	}
	mustApply(t, tb, Action{PlayerID: "p2", Type: ActionCall})

	// The all-in was a full raise, so p0 may raise again.
	out := mustApply(t, tb, Action{PlayerID: "p0", Type: ActionRaise, Amount: 50})
	if out.StreetComplete {
		t.Fatalf("unexpected street completion: %+v", out)
	}
	if tb.CurrentBet != 160 {
		t.Fatalf("table bet = %d, want 160", tb.CurrentBet)
	}
}

func TestCallShortStackGoesAllIn(t *testing.T) {
	tb := startedTable(t, 3)
	tb.Seats[0].Stack = 15
	out := mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	if out.Committed != 15 {
		t.Fatalf("short call committed = %d, want 15", out.Committed)
	}
	if !tb.Seats[0].AllIn {
		t.Fatal("short caller not marked all-in")
	}
}

func TestTimeBankDrainsOnSlowAction(t *testing.T) {
	tb := startedTable(t, 2)
	late := t0.Add(tb.TimeBank + 5*time.Second)
	mustApply(t, tb, Action{PlayerID: "p0", Type: ActionCall})
	// Reset the clock reference, then act late on the next turn.
	tb.LastActionAt = t0
	before := tb.Seats[1].TimeBank
	if _, err := tb.Apply(Action{PlayerID: "p1", Type: ActionCheck}, late); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := before - tb.Seats[1].TimeBank; got != 5*time.Second {
		t.Fatalf("time bank drained %v, want 5s", got)
	}
}

func TestTimeBankExpiry(t *testing.T) {
	tb := startedTable(t, 2)
	seat, expired := tb.TimeBankExpired(t0.Add(time.Second))
	if expired {
		t.Fatalf("expired too early, seat %d", seat)
	}
	deadline := t0.Add(tb.TimeBank + tb.Seats[0].TimeBank + time.Second)
	seat, expired = tb.TimeBankExpired(deadline)
	if !expired || seat != 0 {
		t.Fatalf("seat %d expired=%v, want seat 0 expired", seat, expired)
	}
}
