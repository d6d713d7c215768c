package game

import "sort"

// PotLayer is one pot: an amount and the seats eligible to win it.
type PotLayer struct {
	Amount   int64 `json:"amount"`
	Eligible []int `json:"eligible"`
}

// ComputePots derives the main pot and side pots from hand contributions.
// Distinct non-zero contribution levels, ascending, each form a layer;
// a layer's amount is everything contributed between the previous level and
// this one, by anyone, and its eligible set is the non-folded seats that
// contributed at least the level. A folded seat's chips fund layers but the
// seat is never eligible. Chips above the highest level any eligible seat
// reached (a folded seat's uncalled surplus) roll into the last layer with
// a non-empty eligible set, so the layers always sum to the full pot.
func ComputePots(seats []*Seat) []PotLayer {
	levels := make([]int64, 0, len(seats))
	seen := map[int64]bool{}
	for _, s := range seats {
		if s == nil || s.TotalContributed == 0 {
			continue
		}
		if !seen[s.TotalContributed] {
			seen[s.TotalContributed] = true
			levels = append(levels, s.TotalContributed)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	layers := make([]PotLayer, 0, len(levels))
	var prev int64
	for _, level := range levels {
		var amount int64
		for _, s := range seats {
			if s == nil {
				continue
			}
			amount += min64(s.TotalContributed, level) - min64(s.TotalContributed, prev)
		}
		prev = level

		eligible := make([]int, 0, len(seats))
		for _, s := range seats {
			if s != nil && s.Active && s.TotalContributed >= level {
				eligible = append(eligible, s.Index)
			}
		}
		if len(eligible) == 0 && len(layers) > 0 {
			layers[len(layers)-1].Amount += amount
			continue
		}
		if n := len(layers); n > 0 && equalSeatSets(layers[n-1].Eligible, eligible) {
			layers[n-1].Amount += amount
			continue
		}
		layers = append(layers, PotLayer{Amount: amount, Eligible: eligible})
	}
	return layers
}

// entitlements is, per seat index, the most a seat could win across every
// layer it is eligible for. Settlement validation rejects any payout above
// it.
func entitlements(layers []PotLayer) map[int]int64 {
	out := map[int]int64{}
	for _, layer := range layers {
		for _, seat := range layer.Eligible {
			out[seat] += layer.Amount
		}
	}
	return out
}

func equalSeatSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
