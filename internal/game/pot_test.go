package game

import "testing"

func seatWith(index int, contributed int64, active bool) *Seat {
	return &Seat{Index: index, PlayerID: "p", Active: active, TotalContributed: contributed}
}

func TestComputePotsSingleLayer(t *testing.T) {
	seats := []*Seat{seatWith(0, 100, true), seatWith(1, 100, true), seatWith(2, 100, true)}
	layers := ComputePots(seats)
	if len(layers) != 1 {
		t.Fatalf("expected 1 layer, got %+v", layers)
	}
	if layers[0].Amount != 300 || len(layers[0].Eligible) != 3 {
		t.Fatalf("unexpected layer: %+v", layers[0])
	}
}

func TestComputePotsAllInSide(t *testing.T) {
	seats := []*Seat{seatWith(0, 50, true), seatWith(1, 150, true), seatWith(2, 150, true)}
	layers := ComputePots(seats)
	if len(layers) != 2 {
		t.Fatalf("expected 2 layers, got %+v", layers)
	}
	if layers[0].Amount != 150 || len(layers[0].Eligible) != 3 {
		t.Fatalf("main pot wrong: %+v", layers[0])
	}
	if layers[1].Amount != 200 || len(layers[1].Eligible) != 2 {
		t.Fatalf("side pot wrong: %+v", layers[1])
	}
	if layers[1].Eligible[0] != 1 || layers[1].Eligible[1] != 2 {
		t.Fatalf("side pot eligibility wrong: %+v", layers[1])
	}
}

func TestComputePotsFoldedSurplusRollsDown(t *testing.T) {
	// The folder's chips above the highest active level stay winnable by
	// the remaining seats; layers must sum to the full pot.
	seats := []*Seat{seatWith(0, 300, false), seatWith(1, 100, true), seatWith(2, 100, true)}
	layers := ComputePots(seats)
	if len(layers) != 1 {
		t.Fatalf("expected 1 layer, got %+v", layers)
	}
	if layers[0].Amount != 500 {
		t.Fatalf("expected folded surplus rolled in, got %+v", layers[0])
	}
	if len(layers[0].Eligible) != 2 {
		t.Fatalf("folded seat must not be eligible: %+v", layers[0])
	}
}

func TestComputePotsFolderFundsButNotEligible(t *testing.T) {
	seats := []*Seat{seatWith(0, 100, false), seatWith(1, 100, true), seatWith(2, 300, true), seatWith(3, 300, true)}
	layers := ComputePots(seats)
	if len(layers) != 2 {
		t.Fatalf("expected 2 layers, got %+v", layers)
	}
	if layers[0].Amount != 400 || len(layers[0].Eligible) != 3 {
		t.Fatalf("main pot wrong: %+v", layers[0])
	}
	if layers[1].Amount != 400 || len(layers[1].Eligible) != 2 {
		t.Fatalf("side pot wrong: %+v", layers[1])
	}
	var total int64
	for _, l := range layers {
		total += l.Amount
	}
	if total != 800 {
		t.Fatalf("layers sum %d, want 800", total)
	}
}

func TestEntitlements(t *testing.T) {
	seats := []*Seat{seatWith(0, 50, true), seatWith(1, 150, true), seatWith(2, 150, true)}
	maxWin := entitlements(ComputePots(seats))
	if maxWin[0] != 150 {
		t.Fatalf("seat 0 entitlement = %d, want 150", maxWin[0])
	}
	if maxWin[1] != 350 || maxWin[2] != 350 {
		t.Fatalf("full-stack entitlements wrong: %+v", maxWin)
	}
}

func TestComputePotsMergesEqualEligibleSets(t *testing.T) {
	// A folded seat between two levels creates a layer with the same
	// eligible set as the one before it; they collapse into one.
	seats := []*Seat{seatWith(0, 80, false), seatWith(1, 200, true), seatWith(2, 200, true)}
	layers := ComputePots(seats)
	if len(layers) != 1 {
		t.Fatalf("expected merged single layer, got %+v", layers)
	}
	if layers[0].Amount != 480 {
		t.Fatalf("merged amount = %d, want 480", layers[0].Amount)
	}
}
