package game

import (
	"math/rand"
	"testing"
	"time"
)

// Random legal action sequences must never create or destroy chips: stacks
// plus pot stay constant through an entire betting street, whatever order
// folds, calls, raises and all-ins land in.
func TestChipConservationUnderRandomActions(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		tb := startedTable(t, 4)
		total := tb.TotalChips()

		now := t0.Add(time.Minute)
		for step := 0; step < 64; step++ {
			if tb.CurrentTurn == NoSeat {
				break
			}
			s := tb.Seats[tb.CurrentTurn]
			a := Action{PlayerID: s.PlayerID}
			switch rnd.Intn(5) {
			case 0:
				a.Type = ActionFold
			case 1:
				a.Type = ActionCheck
			case 2:
				a.Type = ActionCall
			case 3:
				a.Type = ActionRaise
				a.Amount = tb.BigBlind * int64(1+rnd.Intn(4))
			case 4:
				a.Type = ActionAllIn
			}
			now = now.Add(time.Second)
			_, err := tb.Apply(a, now)
			if err != nil {
				// Illegal for this state (check behind a bet, raise past
				// the stack, betting closed). The table must be untouched.
				if got := tb.TotalChips(); got != total {
					t.Fatalf("seed %d step %d: rejected %s mutated chips: %d != %d", seed, step, a.Type, got, total)
				}
				continue
			}
			if got := tb.TotalChips(); got != total {
				t.Fatalf("seed %d step %d: %s broke conservation: %d != %d", seed, step, a.Type, got, total)
			}
		}
	}
}
