package game

import (
	"testing"
)

// showdownTable builds a three-way table already at showdown with
// contributions 50 (all-in), 150, 150.
func showdownTable(t *testing.T) *Table {
	t.Helper()
	tb := startedTable(t, 3)
	tb.Seats[0].Stack = 0
	tb.Seats[0].AllIn = true
	tb.Seats[0].TotalContributed = 50
	tb.Seats[1].Stack = 1850
	tb.Seats[1].TotalContributed = 150
	tb.Seats[2].Stack = 1850
	tb.Seats[2].TotalContributed = 150
	tb.Pot = 350
	tb.Phase = PhaseShowdown
	tb.CurrentTurn = NoSeat
	board := [5]Card{Card(0), Card(5), Card(10), Card(15), Card(20)}
	tb.Community = board
	return tb
}

func fullBoard() [5]Card {
	return [5]Card{Card(0), Card(5), Card(10), Card(15), Card(20)}
}

func TestSettlementCreditsWinners(t *testing.T) {
	tb := showdownTable(t)
	before := tb.TotalChips()

	res, err := tb.ApplySettlement(tb.HandNumber, []string{"p1"}, []int64{350}, FullHouse, fullBoard(), []byte("proof"), t0)
	if err != nil {
		t.Fatalf("ApplySettlement() error = %v", err)
	}
	if tb.Phase != PhaseComplete {
		t.Fatalf("phase = %v, want complete", tb.Phase)
	}
	if tb.Pot != 0 {
		t.Fatalf("pot = %d after settlement", tb.Pot)
	}
	if tb.Seats[1].Stack != 2200 {
		t.Fatalf("winner stack = %d, want 2200", tb.Seats[1].Stack)
	}
	if tb.TotalChips() != before {
		t.Fatalf("chips not conserved: %d != %d", tb.TotalChips(), before)
	}
	if res.WinningHand != FullHouse || len(res.Participants) != 3 {
		t.Fatalf("result = %+v", res)
	}
	if len(tb.SidePots) != 2 {
		t.Fatalf("side pots = %+v, want 2 layers", tb.SidePots)
	}
}

func TestSettlementSplitAcrossLayers(t *testing.T) {
	tb := showdownTable(t)
	// Short all-in seat takes the main pot, a full-stack seat the side pot.
	_, err := tb.ApplySettlement(tb.HandNumber, []string{"p0", "p1"}, []int64{150, 200}, Flush, fullBoard(), nil, t0)
	if err != nil {
		t.Fatalf("ApplySettlement() error = %v", err)
	}
	if tb.Seats[0].Stack != 150 || tb.Seats[1].Stack != 2050 {
		t.Fatalf("stacks = %d/%d, want 150/2050", tb.Seats[0].Stack, tb.Seats[1].Stack)
	}
}

func TestSettlementRejectsOverEntitlement(t *testing.T) {
	tb := showdownTable(t)
	// Seat 0 is only eligible for the 150 main pot.
	_, err := tb.ApplySettlement(tb.HandNumber, []string{"p0"}, []int64{350}, Flush, fullBoard(), nil, t0)
	if err != ErrInvalidPayoutDistribution {
		t.Fatalf("error = %v, want %v", err, ErrInvalidPayoutDistribution)
	}
	if tb.Phase != PhaseShowdown || tb.Pot != 350 {
		t.Fatalf("failed settlement mutated table: phase=%v pot=%d", tb.Phase, tb.Pot)
	}
}

func TestSettlementRejectsBadShape(t *testing.T) {
	tb := showdownTable(t)
	cases := []struct {
		name    string
		winners []string
		payouts []int64
	}{
		{"empty winners", nil, nil},
		{"length mismatch", []string{"p1"}, []int64{100, 250}},
		{"negative payout", []string{"p1", "p2"}, []int64{400, -50}},
		{"sum below pot", []string{"p1"}, []int64{300}},
		{"sum above pot", []string{"p1"}, []int64{400}},
		{"unknown winner", []string{"ghost"}, []int64{350}},
		{"duplicate winner", []string{"p1", "p1"}, []int64{175, 175}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tb.ApplySettlement(tb.HandNumber, tc.winners, tc.payouts, Flush, fullBoard(), nil, t0); err != ErrInvalidPayoutDistribution {
				t.Fatalf("error = %v, want %v", err, ErrInvalidPayoutDistribution)
			}
		})
	}
}

func TestSettlementRejectsFoldedWinner(t *testing.T) {
	tb := showdownTable(t)
	tb.Seats[2].Active = false
	if _, err := tb.ApplySettlement(tb.HandNumber, []string{"p2"}, []int64{350}, Flush, fullBoard(), nil, t0); err != ErrInvalidPayoutDistribution {
		t.Fatalf("folded winner error = %v, want %v", err, ErrInvalidPayoutDistribution)
	}
}

func TestSettlementDuplicateReturnsExisting(t *testing.T) {
	tb := showdownTable(t)
	first, err := tb.ApplySettlement(tb.HandNumber, []string{"p1"}, []int64{350}, Flush, fullBoard(), []byte("proof"), t0)
	if err != nil {
		t.Fatalf("first settlement error = %v", err)
	}
	stack := tb.Seats[1].Stack

	again, err := tb.ApplySettlement(tb.HandNumber, []string{"p2"}, []int64{350}, Flush, fullBoard(), nil, t0)
	if err != ErrAlreadySettled {
		t.Fatalf("duplicate error = %v, want %v", err, ErrAlreadySettled)
	}
	if again != first {
		t.Fatal("duplicate settlement returned a different result")
	}
	if tb.Seats[1].Stack != stack {
		t.Fatal("duplicate settlement moved chips")
	}
}

func TestSettlementStaleHandRejected(t *testing.T) {
	tb := showdownTable(t)
	if _, err := tb.ApplySettlement(tb.HandNumber+1, []string{"p1"}, []int64{350}, Flush, fullBoard(), nil, t0); err != ErrStaleCallback {
		t.Fatalf("stale error = %v, want %v", err, ErrStaleCallback)
	}
}

func TestSettlementWrongPhaseRejected(t *testing.T) {
	tb := startedTable(t, 2)
	if _, err := tb.ApplySettlement(tb.HandNumber, []string{"p1"}, []int64{30}, Flush, fullBoard(), nil, t0); err != ErrWrongPhase {
		t.Fatalf("wrong phase error = %v, want %v", err, ErrWrongPhase)
	}
}

func TestSettlementProofHashRecorded(t *testing.T) {
	tb := showdownTable(t)
	res, err := tb.ApplySettlement(tb.HandNumber, []string{"p1"}, []int64{350}, Flush, fullBoard(), []byte("attestation"), t0)
	if err != nil {
		t.Fatalf("ApplySettlement() error = %v", err)
	}
	var zero [32]byte
	if res.ProofHash == zero {
		t.Fatal("proof hash not recorded")
	}
	if string(res.Proof) != "attestation" {
		t.Fatalf("proof = %q", res.Proof)
	}
}
