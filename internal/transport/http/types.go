package httptransport

import (
	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/oracle"
)

// showdownCallback is the wire form of a settlement delivery. The board may
// carry fewer than five cards; missing slots stay sentinel and are filled
// from the table's own reveals.
type showdownCallback struct {
	HandNumber uint64            `json:"hand_number"`
	Winners    []string          `json:"winners"`
	Payouts    []int64           `json:"payouts"`
	Category   game.HandCategory `json:"category"`
	Board      []game.Card       `json:"board"`
	Proof      []byte            `json:"proof"`
}

func (c showdownCallback) toResult() oracle.ShowdownResult {
	board := [5]game.Card{game.NoCard, game.NoCard, game.NoCard, game.NoCard, game.NoCard}
	for i, card := range c.Board {
		if i >= len(board) {
			break
		}
		board[i] = card
	}
	return oracle.ShowdownResult{
		Winners:  c.Winners,
		Payouts:  c.Payouts,
		Category: c.Category,
		Board:    board,
		Proof:    c.Proof,
	}
}
