package game

// Card is a code in 0..51. Rank is code/4 (0=Two .. 12=Ace) and suit is
// code%4, matching the order the oracle deals in. NoCard marks a community
// slot that has not been revealed yet.
type Card uint8

const NoCard Card = 255

type Suit int

type Rank int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (c Card) Rank() Rank {
	return Rank(int(c)/4) + Two
}

func (c Card) Suit() Suit {
	return Suit(int(c) % 4)
}

func (c Card) Valid() bool {
	return c < 52
}

func (c Card) String() string {
	if c == NoCard {
		return "??"
	}
	if !c.Valid() {
		return "!!"
	}
	r := map[Rank]string{
		Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
	}[c.Rank()]
	s := map[Suit]string{Spades: "s", Hearts: "h", Diamonds: "d", Clubs: "c"}[c.Suit()]
	return r + s
}

// HandCategory mirrors the oracle's winning-hand classification.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

func (h HandCategory) String() string {
	switch h {
	case HighCard:
		return "high_card"
	case OnePair:
		return "one_pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	default:
		return "unknown"
	}
}
