package game

import "time"

const (
	// MaxSeats is the hard seat capacity; tables may configure fewer.
	MaxSeats = 6

	// NoSeat is the turn sentinel: nobody can act.
	NoSeat = -1

	DefaultStartingChips int64 = 2000
	DefaultTimeBank            = 30 * time.Second
	MaxNameBytes               = 32
	MaxMessageBytes            = 64
)

// TokenGate restricts joining to wallets holding at least Amount of Mint.
// The engine only shape-checks the claimed balance; verifying the claim
// against a chain is the transport layer's concern.
type TokenGate struct {
	Mint   string `json:"mint"`
	Amount int64  `json:"amount"`
}

// Seat is one player's state at a table. A folded seat keeps its stack;
// only the committed contribution stays in the pot.
type Seat struct {
	PlayerID         string
	Wallet           string
	Index            int
	Stack            int64
	CurrentBet       int64
	TotalContributed int64
	Active           bool
	AllIn            bool
	HasActed         bool
	ActionSeq        uint64
	TimeBank         time.Duration
	LastReaction     uint8
	LastReactionAt   time.Time
	LastMessage      string
	LastMessageAt    time.Time
	JoinedAt         time.Time
}

// CanAct reports whether the seat can still take betting actions this hand.
func (s *Seat) CanAct() bool {
	return s != nil && s.Active && !s.AllIn
}

// Table is the per-table aggregate: every mutation goes through its methods
// under the owner's single writer lock. It has no I/O.
type Table struct {
	ID         string
	Name       string
	Creator    string
	SmallBlind int64
	BigBlind   int64
	MinPlayers int
	MaxPlayers int

	Phase        GamePhase
	Pot          int64
	CurrentBet   int64
	DealerSeat   int
	CurrentTurn  int
	HandNumber   uint64
	Community    [5]Card
	SidePots     []PotLayer
	PlayersActed int
	PlayersToAct int
	LastActionAt time.Time

	StartingChips int64
	TimeBank      time.Duration
	TokenGate     *TokenGate

	Seats [MaxSeats]*Seat

	// raiseClosed is set when an under-sized all-in pushes the bet up
	// without constituting a full raise: seats that already acted may
	// only call or fold.
	raiseClosed bool

	// pendingAdvance is the per-phase reentrancy guard. While non-empty an
	// oracle round-trip is in flight and player actions are refused.
	pendingAdvance string

	seenActions map[string]ActionOutcome
	results     []*GameResult
}

// NewTable validates creation parameters per the table rules: positive small
// blind, seat bounds within [2, MaxSeats]. Big blind is conventionally twice
// the small blind but not enforced.
func NewTable(id, name, creator string, smallBlind, bigBlind int64, minPlayers, maxPlayers int, gate *TokenGate, now time.Time) (*Table, error) {
	if smallBlind <= 0 || bigBlind <= 0 {
		return nil, ErrInvalidBlind
	}
	if minPlayers < 2 || minPlayers > maxPlayers || maxPlayers > MaxSeats {
		return nil, ErrInvalidPlayerCount
	}
	if len(name) > MaxNameBytes {
		name = name[:MaxNameBytes]
	}
	t := &Table{
		ID:            id,
		Name:          name,
		Creator:       creator,
		SmallBlind:    smallBlind,
		BigBlind:      bigBlind,
		MinPlayers:    minPlayers,
		MaxPlayers:    maxPlayers,
		Phase:         PhaseWaiting,
		CurrentTurn:   NoSeat,
		StartingChips: DefaultStartingChips,
		TimeBank:      DefaultTimeBank,
		TokenGate:     gate,
		LastActionAt:  now,
		seenActions:   map[string]ActionOutcome{},
	}
	for i := range t.Community {
		t.Community[i] = NoCard
	}
	return t, nil
}

// Join seats a player. Only legal while the table is Waiting; seats are
// fixed for the table's lifetime after that. tokenBalance is the claimed
// holding for token-gated tables (nil when the caller holds no account).
func (t *Table) Join(playerID, wallet string, seatIndex int, tokenBalance *int64, now time.Time) (*Seat, error) {
	if t.Phase != PhaseWaiting {
		return nil, ErrWrongPhase
	}
	if seatIndex < 0 || seatIndex >= t.MaxPlayers {
		return nil, ErrInvalidSeat
	}
	if t.SeatedCount() >= t.MaxPlayers {
		return nil, ErrTableFull
	}
	if t.Seats[seatIndex] != nil {
		return nil, ErrSeatTaken
	}
	if t.seatByPlayer(playerID) != nil {
		return nil, ErrSeatTaken
	}
	if t.TokenGate != nil {
		if tokenBalance == nil {
			return nil, ErrTokenGateRequired
		}
		if *tokenBalance < t.TokenGate.Amount {
			return nil, ErrInsufficientTokens
		}
	}
	seat := &Seat{
		PlayerID: playerID,
		Wallet:   wallet,
		Index:    seatIndex,
		Stack:    t.StartingChips,
		Active:   true,
		TimeBank: t.TimeBank,
		JoinedAt: now,
	}
	t.Seats[seatIndex] = seat
	return seat, nil
}

// Start begins the first hand. Only the creator may start, and only from
// Waiting with at least MinPlayers seated.
func (t *Table) Start(callerID string, now time.Time) error {
	if callerID != t.Creator {
		return ErrNotCreator
	}
	if t.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	if t.SeatedCount() < t.MinPlayers {
		return ErrNotEnoughPlayers
	}
	t.startHand(now)
	return nil
}

// NextHand resets a Completed table for the following hand: rotate the
// dealer, bump the hand number, clear community cards and per-hand fields.
// The button moves by funded seats only; last hand's fold flags have not
// been reset yet and must not influence rotation. With fewer than two
// funded seats there is no hand to deal and the table stays Complete.
func (t *Table) NextHand(now time.Time) error {
	if t.Phase != PhaseComplete {
		return ErrWrongPhase
	}
	if t.fundedCount() < 2 {
		return ErrNotEnoughPlayers
	}
	t.DealerSeat = t.nextFunded(t.DealerSeat)
	t.startHand(now)
	return nil
}

func (t *Table) startHand(now time.Time) {
	t.HandNumber++
	t.Phase = PhasePreFlop
	t.Pot = 0
	t.CurrentBet = 0
	t.SidePots = nil
	t.raiseClosed = false
	t.pendingAdvance = ""
	t.seenActions = map[string]ActionOutcome{}
	for i := range t.Community {
		t.Community[i] = NoCard
	}
	for _, s := range t.Seats {
		if s == nil {
			continue
		}
		s.CurrentBet = 0
		s.TotalContributed = 0
		s.AllIn = false
		s.HasActed = false
		// Busted seats sit the hand out; their (empty) stack is frozen.
		s.Active = s.Stack > 0
	}

	t.postBlinds()
	t.PlayersActed = 0
	t.PlayersToAct = t.canActCount()
	t.CurrentTurn = t.firstToActPreflop()
	t.LastActionAt = now
}

// postBlinds commits the blinds through the chip ledger so the big blind's
// CurrentBet already satisfies the table bet and preflop check follows the
// normal rule with no special case. Heads-up the dealer posts the small
// blind.
func (t *Table) postBlinds() {
	sb := t.nextOccupied(t.DealerSeat)
	if t.activeCount() == 2 {
		sb = t.dealerOrNextActive()
	}
	bb := t.nextOccupied(sb)
	t.commitCapped(t.Seats[sb], t.SmallBlind)
	t.commitCapped(t.Seats[bb], t.BigBlind)
	t.CurrentBet = t.BigBlind
}

func (t *Table) dealerOrNextActive() int {
	if s := t.Seats[t.DealerSeat]; s != nil && s.Active {
		return t.DealerSeat
	}
	return t.nextOccupied(t.DealerSeat)
}

func (t *Table) firstToActPreflop() int {
	sb := t.nextOccupied(t.DealerSeat)
	if t.activeCount() == 2 {
		sb = t.dealerOrNextActive()
	}
	bb := t.nextOccupied(sb)
	return t.nextActor(bb)
}

// SeatedCount is the number of occupied seats.
func (t *Table) SeatedCount() int {
	n := 0
	for _, s := range t.Seats {
		if s != nil {
			n++
		}
	}
	return n
}

func (t *Table) seatByPlayer(playerID string) *Seat {
	for _, s := range t.Seats {
		if s != nil && s.PlayerID == playerID {
			return s
		}
	}
	return nil
}

// SeatOf returns the seat for a player id, or nil.
func (t *Table) SeatOf(playerID string) *Seat {
	return t.seatByPlayer(playerID)
}

// LatestResult returns the most recent settlement, or nil before the first.
func (t *Table) LatestResult() *GameResult {
	if len(t.results) == 0 {
		return nil
	}
	return t.results[len(t.results)-1]
}

// ResultFor returns the settlement for a hand number, or nil.
func (t *Table) ResultFor(handNumber uint64) *GameResult {
	for _, r := range t.results {
		if r.HandNumber == handNumber {
			return r
		}
	}
	return nil
}

// AdvancePending reports the in-flight oracle guard name, if any.
func (t *Table) AdvancePending() string {
	return t.pendingAdvance
}
