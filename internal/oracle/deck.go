package oracle

import (
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
)

// Deck is a full 52-card deal order. The local oracle derives it
// deterministically from (table, hand), so every re-request for the same
// hand sees the same cards.
type Deck struct {
	cards []game.Card
	next  int
}

func NewDeck(tableID string, handNumber uint64) *Deck {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tableID))
	_, _ = h.Write([]byte("/"))
	_, _ = h.Write([]byte(strconv.FormatUint(handNumber, 10)))

	cards := make([]game.Card, 52)
	for i := range cards {
		cards[i] = game.Card(i)
	}
	rnd := rand.New(rand.NewSource(int64(h.Sum64())))
	rnd.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

func (d *Deck) Deal() game.Card {
	c := d.cards[d.next]
	d.next++
	return c
}

// At returns the card at a fixed position without consuming anything.
func (d *Deck) At(pos int) game.Card {
	return d.cards[pos]
}
