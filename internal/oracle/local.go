package oracle

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"

	"github.com/rs/zerolog/log"
)

// Local is an in-process oracle. The deal is a pure function of
// (table, hand), so re-requests reproduce the same cards, and the same
// implementation serves as the supervisory fallback when an external
// oracle goes quiet: both deliver through the sink's idempotent entry
// points, so whichever lands first wins.
//
// Deck layout is fixed: seat i's hole cards sit at positions 2i and 2i+1,
// the five community cards at 2*MaxSeats onward. Hole positions depend on
// the seat index alone, not on who happens to be seated.
type Local struct {
	sink ResultSink
}

func NewLocal() *Local {
	return &Local{}
}

// Bind attaches the result sink. Must be called before any request.
func (l *Local) Bind(sink ResultSink) {
	l.sink = sink
}

func (l *Local) RequestReveal(ctx context.Context, req RevealRequest) error {
	deck := NewDeck(req.TableID, req.HandNumber)
	values := make([]game.Card, len(req.Slots))
	for i, slot := range req.Slots {
		values[i] = deck.At(2*game.MaxSeats + slot)
	}
	go func() {
		if err := l.sink.SubmitRevealedCards(context.Background(), req.TableID, req.HandNumber, req.Slots, values); err != nil {
			log.Warn().Err(err).Str("table_id", req.TableID).Uint64("hand", req.HandNumber).Msg("local reveal delivery rejected")
		}
	}()
	return nil
}

func (l *Local) RequestShowdown(ctx context.Context, req ShowdownRequest) error {
	res := l.Evaluate(req)
	go func() {
		if err := l.sink.SubmitShowdown(context.Background(), req.TableID, req.HandNumber, res); err != nil {
			log.Warn().Err(err).Str("table_id", req.TableID).Uint64("hand", req.HandNumber).Msg("local showdown delivery rejected")
		}
	}()
	return nil
}

// Evaluate computes the settlement for a showdown request: winners per pot
// layer, layer amounts split evenly with the odd chip to the lowest seat.
// The reported category is the main pot winner's hand. A sole surviving
// contender takes the whole pot without a card comparison.
func (l *Local) Evaluate(req ShowdownRequest) ShowdownResult {
	deck := NewDeck(req.TableID, req.HandNumber)
	board := req.Board
	for i := range board {
		if board[i] == game.NoCard {
			board[i] = deck.At(2*game.MaxSeats + i)
		}
	}

	active := make([]SeatInfo, 0, len(req.Seats))
	for _, s := range req.Seats {
		if s.Active {
			active = append(active, s)
		}
	}

	payoutBySeat := map[int]int64{}
	playerBySeat := map[int]string{}
	for _, s := range req.Seats {
		playerBySeat[s.Seat] = s.PlayerID
	}
	var category game.HandCategory

	if len(active) == 1 {
		payoutBySeat[active[0].Seat] = req.Pot
	} else {
		rankBySeat := map[int]HandRank{}
		for _, s := range active {
			cards := []game.Card{deck.At(2 * s.Seat), deck.At(2*s.Seat + 1)}
			cards = append(cards, board[:]...)
			rankBySeat[s.Seat] = Evaluate7(cards)
		}

		// Layers come main pot first; only its winner names the hand.
		categorySet := false
		layers := game.ComputePots(syntheticSeats(req.Seats))
		for _, layer := range layers {
			best := bestSeats(layer.Eligible, rankBySeat)
			if len(best) == 0 {
				continue
			}
			share := layer.Amount / int64(len(best))
			remainder := layer.Amount - share*int64(len(best))
			for i, seat := range best {
				payoutBySeat[seat] += share
				if i == 0 {
					payoutBySeat[seat] += remainder
				}
			}
			if !categorySet {
				category = rankBySeat[best[0]].Category
				categorySet = true
			}
		}
	}

	seatsOut := make([]int, 0, len(payoutBySeat))
	for seat, amt := range payoutBySeat {
		if amt > 0 {
			seatsOut = append(seatsOut, seat)
		}
	}
	sort.Ints(seatsOut)
	winners := make([]string, len(seatsOut))
	payouts := make([]int64, len(seatsOut))
	for i, seat := range seatsOut {
		winners[i] = playerBySeat[seat]
		payouts[i] = payoutBySeat[seat]
	}

	proof, _ := json.Marshal(map[string]any{
		"scheme":  "local-deal-v1",
		"table":   req.TableID,
		"hand":    req.HandNumber,
		"winners": winners,
		"payouts": payouts,
	})
	return ShowdownResult{
		Winners:  winners,
		Payouts:  payouts,
		Category: category,
		Board:    board,
		Proof:    proof,
	}
}

// bestSeats returns the eligible seats holding the strongest hand,
// ascending by seat index.
func bestSeats(eligible []int, ranks map[int]HandRank) []int {
	var best []int
	var bestRank HandRank
	for _, seat := range eligible {
		r, ok := ranks[seat]
		if !ok {
			continue
		}
		switch {
		case len(best) == 0 || r.BetterThan(bestRank):
			best = []int{seat}
			bestRank = r
		case r.Equal(bestRank):
			best = append(best, seat)
		}
	}
	sort.Ints(best)
	return best
}

func syntheticSeats(infos []SeatInfo) []*game.Seat {
	seats := make([]*game.Seat, 0, len(infos))
	for _, s := range infos {
		seats = append(seats, &game.Seat{
			Index:            s.Seat,
			PlayerID:         s.PlayerID,
			Active:           s.Active,
			TotalContributed: s.TotalContributed,
		})
	}
	return seats
}
