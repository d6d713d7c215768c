package httptransport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ololadestephen/EncryptedPoker/internal/registry"
)

var ssePingInterval = 15 * time.Second

// Events streams a table's observer feed as SSE, replaying missed events
// after the client's Last-Event-ID.
func (h *Handlers) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buf, err := h.reg.Events(chi.URLParam(r, "table_id"))
		if err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			WriteHTTPError(w, http.StatusInternalServerError, "stream_not_supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		// Backlog and subscription come from one buffer lock, so nothing
		// appended in between can slip past both.
		replay, ch := buf.SubscribeWithReplay(r.Header.Get("Last-Event-ID"))
		defer buf.Unsubscribe(ch)
		for _, ev := range replay {
			if err := writeSSE(w, ev); err != nil {
				return
			}
		}
		flusher.Flush()
		ticker := time.NewTicker(ssePingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if err := writeSSE(w, ev); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				ping := registry.StreamEvent{
					Event:    "ping",
					ServerTS: time.Now().UnixMilli(),
					Data:     map[string]any{"ts": time.Now().UnixMilli()},
				}
				if err := writeSSE(w, ping); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, ev registry.StreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if ev.EventID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.EventID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "event: %s\n", ev.Event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}
