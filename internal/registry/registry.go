package registry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/cache"
	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/oracle"
	"github.com/Ololadestephen/EncryptedPoker/internal/store"
)

var ErrTableNotFound = errors.New("table_not_found")

const eventBufferSize = 500

// Config tunes per-table parameters and the janitor.
type Config struct {
	StartingChips int64
	TimeBank      time.Duration

	// OracleFallbackAfter is how long an oracle round-trip may stay
	// outstanding before the janitor re-issues it to the fallback dealer.
	OracleFallbackAfter time.Duration
	SweepInterval       time.Duration
}

func (c *Config) withDefaults() {
	if c.StartingChips <= 0 {
		c.StartingChips = game.DefaultStartingChips
	}
	if c.TimeBank <= 0 {
		c.TimeBank = game.DefaultTimeBank
	}
	if c.OracleFallbackAfter <= 0 {
		c.OracleFallbackAfter = 15 * time.Second
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = 500 * time.Millisecond
	}
}

// tableRuntime pairs a table with its lock and observer feed. All reads and
// writes of the table go through rt.mu; the registry map lock is never held
// across a table operation.
type tableRuntime struct {
	mu     sync.Mutex
	table  *game.Table
	buffer *EventBuffer

	// oracleDeadline is non-zero while an advance round-trip is
	// outstanding; pending is the claimed request, kept for the fallback.
	oracleDeadline time.Time
	pending        game.AdvanceRequest
	fallbackUsed   bool
}

// Registry owns every live table. It is the single writer for each table's
// state and the ResultSink for oracle callbacks.
type Registry struct {
	store    *store.Store
	cache    *cache.Snapshots
	dealer   oracle.Oracle
	fallback oracle.Oracle
	cfg      Config

	mu     sync.Mutex
	tables map[string]*tableRuntime
}

// New builds a registry. store and cache may be nil (in-memory operation);
// fallback may be nil to disable oracle failover.
func New(st *store.Store, snaps *cache.Snapshots, dealer, fallback oracle.Oracle, cfg Config) *Registry {
	cfg.withDefaults()
	return &Registry{
		store:    st,
		cache:    snaps,
		dealer:   dealer,
		fallback: fallback,
		cfg:      cfg,
		tables:   map[string]*tableRuntime{},
	}
}

type CreateTableRequest struct {
	Name       string          `json:"name"`
	Creator    string          `json:"creator"`
	SmallBlind int64           `json:"small_blind"`
	BigBlind   int64           `json:"big_blind"`
	MinPlayers int             `json:"min_players"`
	MaxPlayers int             `json:"max_players"`
	TokenGate  *game.TokenGate `json:"token_gate,omitempty"`
}

type JoinRequest struct {
	TableID      string `json:"-"`
	PlayerID     string `json:"player_id"`
	Wallet       string `json:"wallet"`
	Seat         int    `json:"seat"`
	TokenBalance *int64 `json:"token_balance,omitempty"`
}

func (r *Registry) CreateTable(ctx context.Context, req CreateTableRequest) (game.TableSnapshot, error) {
	id := store.NewID()
	t, err := game.NewTable(id, req.Name, req.Creator, req.SmallBlind, req.BigBlind, req.MinPlayers, req.MaxPlayers, req.TokenGate, time.Now())
	if err != nil {
		return game.TableSnapshot{}, err
	}
	t.StartingChips = r.cfg.StartingChips
	t.TimeBank = r.cfg.TimeBank

	rt := &tableRuntime{table: t, buffer: NewEventBuffer(eventBufferSize)}
	r.mu.Lock()
	r.tables[id] = rt
	r.mu.Unlock()

	rt.mu.Lock()
	snap := t.Snapshot()
	rt.buffer.Append("table_created", id, map[string]any{
		"name":        t.Name,
		"creator":     t.Creator,
		"small_blind": t.SmallBlind,
		"big_blind":   t.BigBlind,
	})
	rt.mu.Unlock()

	r.persistSnapshot(ctx, snap)
	return snap, nil
}

func (r *Registry) JoinTable(ctx context.Context, req JoinRequest) (game.TableSnapshot, error) {
	rt, err := r.runtime(req.TableID)
	if err != nil {
		return game.TableSnapshot{}, err
	}
	rt.mu.Lock()
	seat, err := rt.table.Join(req.PlayerID, req.Wallet, req.Seat, req.TokenBalance, time.Now())
	if err != nil {
		rt.mu.Unlock()
		return game.TableSnapshot{}, err
	}
	snap := rt.table.Snapshot()
	rt.buffer.Append("player_joined", req.TableID, map[string]any{
		"player_id": seat.PlayerID,
		"seat":      seat.Index,
		"stack":     seat.Stack,
	})
	rt.mu.Unlock()

	r.persistSnapshot(ctx, snap)
	return snap, nil
}

func (r *Registry) StartGame(ctx context.Context, tableID, callerID string) (game.TableSnapshot, error) {
	rt, err := r.runtime(tableID)
	if err != nil {
		return game.TableSnapshot{}, err
	}
	rt.mu.Lock()
	if err := rt.table.Start(callerID, time.Now()); err != nil {
		rt.mu.Unlock()
		return game.TableSnapshot{}, err
	}
	snap := rt.table.Snapshot()
	rt.buffer.Append("hand_started", tableID, map[string]any{
		"hand_number":  snap.HandNumber,
		"dealer_seat":  snap.DealerSeat,
		"current_turn": snap.CurrentTurn,
	})
	rt.mu.Unlock()

	r.persistSnapshot(ctx, snap)
	return snap, nil
}

// Snapshot renders the table's last-committed state. The cache is written
// on mutation, so reads here always come from the live table.
func (r *Registry) Snapshot(tableID string) (game.TableSnapshot, error) {
	rt, err := r.runtime(tableID)
	if err != nil {
		return game.TableSnapshot{}, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.table.Snapshot(), nil
}

// CachedSnapshot serves observers from Redis when possible, falling back to
// the live table.
func (r *Registry) CachedSnapshot(ctx context.Context, tableID string) ([]byte, error) {
	if payload, ok, err := r.cache.Get(ctx, tableID); err == nil && ok {
		return payload, nil
	}
	snap, err := r.Snapshot(tableID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

func (r *Registry) React(ctx context.Context, tableID, playerID string, reaction uint8) error {
	rt, err := r.runtime(tableID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	err = rt.table.React(playerID, reaction, time.Now())
	if err == nil {
		rt.buffer.Append("reaction", tableID, map[string]any{"player_id": playerID, "reaction": reaction})
	}
	rt.mu.Unlock()
	return err
}

func (r *Registry) Say(ctx context.Context, tableID, playerID, message string) error {
	rt, err := r.runtime(tableID)
	if err != nil {
		return err
	}
	rt.mu.Lock()
	err = rt.table.Say(playerID, message, time.Now())
	if err == nil {
		rt.buffer.Append("chat", tableID, map[string]any{"player_id": playerID, "message": message})
	}
	rt.mu.Unlock()
	return err
}

// Events returns the table's observer feed for SSE streaming.
func (r *Registry) Events(tableID string) (*EventBuffer, error) {
	rt, err := r.runtime(tableID)
	if err != nil {
		return nil, err
	}
	return rt.buffer, nil
}

// Result returns the settlement for a hand, or ErrTableNotFound /
// store.ErrNotFound when absent.
func (r *Registry) Result(tableID string, handNumber uint64) (*game.GameResult, error) {
	rt, err := r.runtime(tableID)
	if err != nil {
		return nil, err
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	res := rt.table.ResultFor(handNumber)
	if res == nil {
		return nil, store.ErrNotFound
	}
	return res, nil
}

// ListTables renders every live table, newest hand activity first left to
// the caller; order is unspecified.
func (r *Registry) ListTables() []game.TableSnapshot {
	rts := r.runtimes()
	out := make([]game.TableSnapshot, 0, len(rts))
	for _, rt := range rts {
		rt.mu.Lock()
		out = append(out, rt.table.Snapshot())
		rt.mu.Unlock()
	}
	return out
}

func (r *Registry) runtime(tableID string) (*tableRuntime, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt := r.tables[tableID]
	if rt == nil {
		return nil, ErrTableNotFound
	}
	return rt, nil
}

func (r *Registry) runtimes() []*tableRuntime {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*tableRuntime, 0, len(r.tables))
	for _, rt := range r.tables {
		out = append(out, rt)
	}
	return out
}

// persistSnapshot writes the table row and the snapshot cache. Both are
// best effort; the live table is the source of truth.
func (r *Registry) persistSnapshot(ctx context.Context, snap game.TableSnapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := r.cache.Put(ctx, snap.TableID, payload); err != nil {
		log.Warn().Err(err).Str("table_id", snap.TableID).Msg("snapshot cache write failed")
	}
	if err := r.store.SaveTable(ctx, store.TableRecord{
		ID:         snap.TableID,
		Name:       snap.Name,
		Creator:    snap.Creator,
		SmallBlind: snap.SmallBlind,
		BigBlind:   snap.BigBlind,
		Phase:      string(snap.Phase),
		HandNumber: snap.HandNumber,
		Pot:        snap.Pot,
		Snapshot:   payload,
	}); err != nil {
		log.Warn().Err(err).Str("table_id", snap.TableID).Msg("table persist failed")
	}
}
