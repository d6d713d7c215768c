package oracle

import (
	"context"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
)

// Oracle is the external dealing/evaluation authority. Both calls are
// asynchronous: results land later through a ResultSink, and the engine
// treats them as at-least-once deliveries.
type Oracle interface {
	RequestReveal(ctx context.Context, req RevealRequest) error
	RequestShowdown(ctx context.Context, req ShowdownRequest) error
}

// ResultSink receives oracle outcomes. The table registry implements it;
// the same entry points serve the external oracle's callbacks and the
// local fallback, so whichever arrives first wins and the other is a
// no-op.
type ResultSink interface {
	SubmitRevealedCards(ctx context.Context, tableID string, handNumber uint64, slots []int, values []game.Card) error
	SubmitShowdown(ctx context.Context, tableID string, handNumber uint64, res ShowdownResult) error
}

// RevealRequest asks for the community cards in Slots (0..4).
type RevealRequest struct {
	TableID    string `json:"table_id"`
	HandNumber uint64 `json:"hand_number"`
	Slots      []int  `json:"slots"`
}

// SeatInfo is the per-seat context a showdown evaluation needs.
type SeatInfo struct {
	Seat             int    `json:"seat"`
	PlayerID         string `json:"player_id"`
	Active           bool   `json:"active"`
	TotalContributed int64  `json:"total_contributed"`
}

// ShowdownRequest asks for winners and a payout breakdown for the hand.
type ShowdownRequest struct {
	TableID    string       `json:"table_id"`
	HandNumber uint64       `json:"hand_number"`
	Board      [5]game.Card `json:"board"`
	Pot        int64        `json:"pot"`
	Seats      []SeatInfo   `json:"seats"`
}

// ShowdownResult is the authoritative settlement: ordered winners, parallel
// payouts summing to the pot, the winning hand class, the final board and
// an opaque attestation.
type ShowdownResult struct {
	Winners  []string          `json:"winners"`
	Payouts  []int64           `json:"payouts"`
	Category game.HandCategory `json:"category"`
	Board    [5]game.Card      `json:"board"`
	Proof    []byte            `json:"proof"`
}
