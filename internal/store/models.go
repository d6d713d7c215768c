package store

import "time"

// TableRecord is the persisted table row: scalar columns for querying plus
// the full snapshot as JSON.
type TableRecord struct {
	ID         string
	Name       string
	Creator    string
	SmallBlind int64
	BigBlind   int64
	Phase      string
	HandNumber uint64
	Pot        int64
	Snapshot   []byte
	UpdatedAt  time.Time
}

// ActionRecord is one applied player action, keyed for idempotency by
// (table, hand, player, action key). The stored outcome is replayed to
// duplicate submissions.
type ActionRecord struct {
	TableID    string
	HandNumber uint64
	PlayerID   string
	ActionKey  string
	ActionType string
	Amount     int64
	Outcome    []byte
	CreatedAt  time.Time
}

// ResultRecord is the append-only settlement history row.
type ResultRecord struct {
	TableID    string
	HandNumber uint64
	Winners    []string
	Payouts    []int64
	Category   int16
	Community  []byte
	Proof      []byte
	ProofHash  []byte
	CreatedAt  time.Time
}
