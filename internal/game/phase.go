package game

type GamePhase string

const (
	PhaseWaiting  GamePhase = "waiting"
	PhasePreFlop  GamePhase = "preflop"
	PhaseFlop     GamePhase = "flop"
	PhaseTurn     GamePhase = "turn"
	PhaseRiver    GamePhase = "river"
	PhaseShowdown GamePhase = "showdown"
	PhaseComplete GamePhase = "complete"
)

// IsBettingPhase reports whether player actions are accepted in p.
func (p GamePhase) IsBettingPhase() bool {
	switch p {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}
	return false
}

// nextPhase is the sole definition of legal phase order. Transitions never
// skip a phase.
func nextPhase(p GamePhase) (GamePhase, bool) {
	switch p {
	case PhasePreFlop:
		return PhaseFlop, true
	case PhaseFlop:
		return PhaseTurn, true
	case PhaseTurn:
		return PhaseRiver, true
	case PhaseRiver:
		return PhaseShowdown, true
	case PhaseShowdown:
		return PhaseComplete, true
	}
	return p, false
}

// revealSlots maps a betting street to the community slots the next reveal
// fills: 3 for the flop, then 1 each for turn and river.
func revealSlots(p GamePhase) []int {
	switch p {
	case PhasePreFlop:
		return []int{0, 1, 2}
	case PhaseFlop:
		return []int{3}
	case PhaseTurn:
		return []int{4}
	}
	return nil
}
