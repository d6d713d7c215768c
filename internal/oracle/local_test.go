package oracle

import (
	"context"
	"testing"
	"time"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
)

func TestDeckDeterministic(t *testing.T) {
	a := NewDeck("tbl", 7)
	b := NewDeck("tbl", 7)
	for i := 0; i < 52; i++ {
		if a.At(i) != b.At(i) {
			t.Fatalf("deck differs at %d: %v != %v", i, a.At(i), b.At(i))
		}
	}
	c := NewDeck("tbl", 8)
	same := true
	for i := 0; i < 52; i++ {
		if a.At(i) != c.At(i) {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different hands dealt identical decks")
	}
}

func TestDeckIsPermutation(t *testing.T) {
	d := NewDeck("tbl", 1)
	seen := map[game.Card]bool{}
	for i := 0; i < 52; i++ {
		c := d.At(i)
		if !c.Valid() || seen[c] {
			t.Fatalf("position %d: card %v invalid or repeated", i, c)
		}
		seen[c] = true
	}
}

func emptyBoard() [5]game.Card {
	return [5]game.Card{game.NoCard, game.NoCard, game.NoCard, game.NoCard, game.NoCard}
}

func TestEvaluateSingleSurvivorTakesPot(t *testing.T) {
	l := NewLocal()
	res := l.Evaluate(ShowdownRequest{
		TableID:    "tbl",
		HandNumber: 1,
		Board:      emptyBoard(),
		Pot:        300,
		Seats: []SeatInfo{
			{Seat: 0, PlayerID: "p0", Active: false, TotalContributed: 100},
			{Seat: 1, PlayerID: "p1", Active: true, TotalContributed: 200},
		},
	})
	if len(res.Winners) != 1 || res.Winners[0] != "p1" {
		t.Fatalf("winners = %v, want [p1]", res.Winners)
	}
	if res.Payouts[0] != 300 {
		t.Fatalf("payout = %d, want full pot", res.Payouts[0])
	}
	for _, c := range res.Board {
		if !c.Valid() {
			t.Fatalf("board not filled: %v", res.Board)
		}
	}
}

func TestEvaluatePayoutsConservePot(t *testing.T) {
	l := NewLocal()
	req := ShowdownRequest{
		TableID:    "tbl",
		HandNumber: 3,
		Board:      emptyBoard(),
		Pot:        350,
		Seats: []SeatInfo{
			{Seat: 0, PlayerID: "p0", Active: true, TotalContributed: 50},
			{Seat: 1, PlayerID: "p1", Active: true, TotalContributed: 150},
			{Seat: 2, PlayerID: "p2", Active: true, TotalContributed: 150},
		},
	}
	res := l.Evaluate(req)
	var sum int64
	for _, p := range res.Payouts {
		sum += p
	}
	if sum != req.Pot {
		t.Fatalf("payouts sum %d, want %d", sum, req.Pot)
	}
	// The short seat can never win more than its 150 entitlement.
	for i, w := range res.Winners {
		if w == "p0" && res.Payouts[i] > 150 {
			t.Fatalf("short stack paid %d beyond its entitlement", res.Payouts[i])
		}
	}
	// Same request again: identical settlement.
	again := l.Evaluate(req)
	if len(again.Winners) != len(res.Winners) {
		t.Fatalf("re-evaluation differs: %v vs %v", again.Winners, res.Winners)
	}
	for i := range res.Winners {
		if again.Winners[i] != res.Winners[i] || again.Payouts[i] != res.Payouts[i] {
			t.Fatalf("re-evaluation differs: %v/%v vs %v/%v", again.Winners, again.Payouts, res.Winners, res.Payouts)
		}
	}
}

func TestEvaluateReportsMainPotCategory(t *testing.T) {
	l := NewLocal()
	req := ShowdownRequest{
		TableID:    "tbl",
		HandNumber: 5,
		Board:      emptyBoard(),
		Pot:        500,
		Seats: []SeatInfo{
			{Seat: 0, PlayerID: "p0", Active: true, TotalContributed: 100},
			{Seat: 1, PlayerID: "p1", Active: true, TotalContributed: 200},
			{Seat: 2, PlayerID: "p2", Active: true, TotalContributed: 200},
		},
	}
	res := l.Evaluate(req)

	// The short stack splits the main pot with everyone; a stronger hand
	// contesting only the side pot must not relabel the result.
	deck := NewDeck(req.TableID, req.HandNumber)
	cards := func(seat int) []game.Card {
		out := []game.Card{deck.At(2 * seat), deck.At(2*seat + 1)}
		for i := 0; i < 5; i++ {
			out = append(out, deck.At(2*game.MaxSeats+i))
		}
		return out
	}
	ranks := map[int]HandRank{
		0: Evaluate7(cards(0)),
		1: Evaluate7(cards(1)),
		2: Evaluate7(cards(2)),
	}
	mainBest := bestSeats([]int{0, 1, 2}, ranks)
	if want := ranks[mainBest[0]].Category; res.Category != want {
		t.Fatalf("category = %v, want main pot winner's %v", res.Category, want)
	}
}

type captureSink struct {
	reveals   chan []game.Card
	showdowns chan ShowdownResult
}

func newCaptureSink() *captureSink {
	return &captureSink{
		reveals:   make(chan []game.Card, 4),
		showdowns: make(chan ShowdownResult, 4),
	}
}

func (s *captureSink) SubmitRevealedCards(_ context.Context, _ string, _ uint64, _ []int, values []game.Card) error {
	s.reveals <- values
	return nil
}

func (s *captureSink) SubmitShowdown(_ context.Context, _ string, _ uint64, res ShowdownResult) error {
	s.showdowns <- res
	return nil
}

func TestLocalRevealDelivers(t *testing.T) {
	sink := newCaptureSink()
	l := NewLocal()
	l.Bind(sink)

	err := l.RequestReveal(context.Background(), RevealRequest{TableID: "tbl", HandNumber: 1, Slots: []int{0, 1, 2}})
	if err != nil {
		t.Fatalf("RequestReveal() error = %v", err)
	}
	select {
	case values := <-sink.reveals:
		if len(values) != 3 {
			t.Fatalf("revealed %d cards, want 3", len(values))
		}
		deck := NewDeck("tbl", 1)
		for i, v := range values {
			if want := deck.At(2*game.MaxSeats + i); v != want {
				t.Fatalf("slot %d = %v, want %v", i, v, want)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("reveal never delivered")
	}
}

func TestLocalShowdownDelivers(t *testing.T) {
	sink := newCaptureSink()
	l := NewLocal()
	l.Bind(sink)

	err := l.RequestShowdown(context.Background(), ShowdownRequest{
		TableID:    "tbl",
		HandNumber: 2,
		Board:      emptyBoard(),
		Pot:        100,
		Seats: []SeatInfo{
			{Seat: 0, PlayerID: "p0", Active: true, TotalContributed: 50},
			{Seat: 1, PlayerID: "p1", Active: true, TotalContributed: 50},
		},
	})
	if err != nil {
		t.Fatalf("RequestShowdown() error = %v", err)
	}
	select {
	case res := <-sink.showdowns:
		var sum int64
		for _, p := range res.Payouts {
			sum += p
		}
		if sum != 100 {
			t.Fatalf("payouts sum %d, want 100", sum)
		}
		if len(res.Proof) == 0 {
			t.Fatal("missing attestation")
		}
	case <-time.After(time.Second):
		t.Fatal("showdown never delivered")
	}
}
