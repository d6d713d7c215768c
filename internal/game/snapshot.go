package game

import "time"

// Snapshot types: the read model handed to observers. Copies only; holding
// one never aliases live table state.

type SeatSnapshot struct {
	PlayerID         string `json:"player_id"`
	Wallet           string `json:"wallet,omitempty"`
	Seat             int    `json:"seat"`
	Stack            int64  `json:"stack"`
	CurrentBet       int64  `json:"current_bet"`
	TotalContributed int64  `json:"total_contributed"`
	Active           bool   `json:"active"`
	AllIn            bool   `json:"all_in"`
	TimeBankMS       int64  `json:"time_bank_ms"`
	LastReaction     uint8  `json:"last_reaction,omitempty"`
	LastMessage      string `json:"last_message,omitempty"`
}

type TableSnapshot struct {
	TableID        string         `json:"table_id"`
	Name           string         `json:"name"`
	Creator        string         `json:"creator"`
	SmallBlind     int64          `json:"small_blind"`
	BigBlind       int64          `json:"big_blind"`
	MinPlayers     int            `json:"min_players"`
	MaxPlayers     int            `json:"max_players"`
	Phase          GamePhase      `json:"phase"`
	Pot            int64          `json:"pot"`
	CurrentBet     int64          `json:"current_bet"`
	DealerSeat     int            `json:"dealer_seat"`
	CurrentTurn    int            `json:"current_turn"`
	HandNumber     uint64         `json:"hand_number"`
	Community      []string       `json:"community"`
	CommunityRaw   []Card         `json:"community_raw"`
	SidePots       []PotLayer     `json:"side_pots,omitempty"`
	PlayersActed   int            `json:"players_acted"`
	PlayersToAct   int            `json:"players_to_act"`
	AdvancePending string         `json:"advance_pending,omitempty"`
	TokenGate      *TokenGate     `json:"token_gate,omitempty"`
	LastActionTS   int64          `json:"last_action_ts"`
	Seats          []SeatSnapshot `json:"seats"`
	LatestResult   *GameResult    `json:"latest_result,omitempty"`
}

// Snapshot renders the last-committed state of the table.
func (t *Table) Snapshot() TableSnapshot {
	community := make([]string, len(t.Community))
	raw := make([]Card, len(t.Community))
	for i, c := range t.Community {
		community[i] = c.String()
		raw[i] = c
	}
	seats := make([]SeatSnapshot, 0, MaxSeats)
	for _, s := range t.Seats {
		if s == nil {
			continue
		}
		seats = append(seats, SeatSnapshot{
			PlayerID:         s.PlayerID,
			Wallet:           s.Wallet,
			Seat:             s.Index,
			Stack:            s.Stack,
			CurrentBet:       s.CurrentBet,
			TotalContributed: s.TotalContributed,
			Active:           s.Active,
			AllIn:            s.AllIn,
			TimeBankMS:       int64(s.TimeBank / time.Millisecond),
			LastReaction:     s.LastReaction,
			LastMessage:      s.LastMessage,
		})
	}
	var sidePots []PotLayer
	if len(t.SidePots) > 0 {
		sidePots = append(sidePots, t.SidePots...)
	}
	return TableSnapshot{
		TableID:        t.ID,
		Name:           t.Name,
		Creator:        t.Creator,
		SmallBlind:     t.SmallBlind,
		BigBlind:       t.BigBlind,
		MinPlayers:     t.MinPlayers,
		MaxPlayers:     t.MaxPlayers,
		Phase:          t.Phase,
		Pot:            t.Pot,
		CurrentBet:     t.CurrentBet,
		DealerSeat:     t.DealerSeat,
		CurrentTurn:    t.CurrentTurn,
		HandNumber:     t.HandNumber,
		Community:      community,
		CommunityRaw:   raw,
		SidePots:       sidePots,
		PlayersActed:   t.PlayersActed,
		PlayersToAct:   t.PlayersToAct,
		AdvancePending: t.pendingAdvance,
		TokenGate:      t.TokenGate,
		LastActionTS:   t.LastActionAt.UnixMilli(),
		Seats:          seats,
		LatestResult:   t.LatestResult(),
	}
}
