package registry

import (
	"strconv"
	"sync"
	"time"
)

// StreamEvent is one entry in a table's observer feed.
type StreamEvent struct {
	EventID  string `json:"event_id"`
	Event    string `json:"event"`
	TableID  string `json:"table_id"`
	ServerTS int64  `json:"server_ts"`
	Data     any    `json:"data"`
}

// EventBuffer is a bounded replay buffer with fan-out to live watchers.
// Slow watchers drop events rather than block the table.
type EventBuffer struct {
	mu       sync.Mutex
	nextID   int64
	max      int
	events   []StreamEvent
	watchers map[chan StreamEvent]struct{}
	closed   bool
}

func NewEventBuffer(max int) *EventBuffer {
	if max <= 0 {
		max = 500
	}
	return &EventBuffer{
		max:      max,
		watchers: map[chan StreamEvent]struct{}{},
	}
}

func (b *EventBuffer) Append(event, tableID string, data any) StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return StreamEvent{}
	}
	b.nextID++
	ev := StreamEvent{
		EventID:  strconv.FormatInt(b.nextID, 10),
		Event:    event,
		TableID:  tableID,
		ServerTS: time.Now().UnixMilli(),
		Data:     data,
	}
	b.events = append(b.events, ev)
	if len(b.events) > b.max {
		b.events = b.events[len(b.events)-b.max:]
	}
	for ch := range b.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

func (b *EventBuffer) ReplayAfter(lastEventID string) []StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replayAfterLocked(lastEventID)
}

func (b *EventBuffer) replayAfterLocked(lastEventID string) []StreamEvent {
	if len(b.events) == 0 {
		return nil
	}
	last, err := strconv.ParseInt(lastEventID, 10, 64)
	if lastEventID == "" || err != nil {
		out := make([]StreamEvent, len(b.events))
		copy(out, b.events)
		return out
	}
	out := make([]StreamEvent, 0, len(b.events))
	for _, ev := range b.events {
		id, _ := strconv.ParseInt(ev.EventID, 10, 64)
		if id > last {
			out = append(out, ev)
		}
	}
	return out
}

func (b *EventBuffer) Subscribe() chan StreamEvent {
	ch := make(chan StreamEvent, 32)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.watchers[ch] = struct{}{}
	return ch
}

// SubscribeWithReplay registers a watcher and returns the replay backlog in
// the same critical section, so an event appended between the two lands in
// exactly one of them.
func (b *EventBuffer) SubscribeWithReplay(lastEventID string) ([]StreamEvent, chan StreamEvent) {
	ch := make(chan StreamEvent, 32)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return nil, ch
	}
	b.watchers[ch] = struct{}{}
	return b.replayAfterLocked(lastEventID), ch
}

func (b *EventBuffer) Unsubscribe(ch chan StreamEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.watchers[ch]; ok {
		delete(b.watchers, ch)
		close(ch)
	}
}

func (b *EventBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.watchers {
		close(ch)
		delete(b.watchers, ch)
	}
}
