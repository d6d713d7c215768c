package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ololadestephen/EncryptedPoker/internal/game"
	"github.com/Ololadestephen/EncryptedPoker/internal/registry"
)

type Handlers struct {
	reg *registry.Registry
}

func NewHandlers(reg *registry.Registry) *Handlers {
	return &Handlers{reg: reg}
}

func (h *Handlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handlers) CreateTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registry.CreateTableRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		snap, err := h.reg.CreateTable(r.Context(), req)
		if err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusCreated, snap)
	}
}

func (h *Handlers) ListTables() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tables": h.reg.ListTables()})
	}
}

func (h *Handlers) JoinTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registry.JoinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		req.TableID = chi.URLParam(r, "table_id")
		snap, err := h.reg.JoinTable(r.Context(), req)
		if err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func (h *Handlers) StartGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PlayerID string `json:"player_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		snap, err := h.reg.StartGame(r.Context(), chi.URLParam(r, "table_id"), req.PlayerID)
		if err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func (h *Handlers) SubmitAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registry.ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		req.TableID = chi.URLParam(r, "table_id")
		out, err := h.reg.SubmitAction(r.Context(), req)
		if err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *Handlers) RequestStreetAdvance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.reg.RequestStreetAdvance(r.Context(), chi.URLParam(r, "table_id"))
		if err != nil {
			code, msg := mapErr(err)
			WriteHTTPError(w, code, msg)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func (h *Handlers) TableSnapshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := h.reg.CachedSnapshot(r.Context(), chi.URLParam(r, "table_id"))
		if err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}
}

func (h *Handlers) HandResult() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handNumber, err := strconv.ParseUint(chi.URLParam(r, "hand_number"), 10, 64)
		if err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_hand_number")
			return
		}
		res, err := h.reg.Result(chi.URLParam(r, "table_id"), handNumber)
		if err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (h *Handlers) React() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PlayerID string `json:"player_id"`
			Reaction uint8  `json:"reaction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.reg.React(r.Context(), chi.URLParam(r, "table_id"), req.PlayerID, req.Reaction); err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handlers) Chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PlayerID string `json:"player_id"`
			Message  string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.reg.Say(r.Context(), chi.URLParam(r, "table_id"), req.PlayerID, req.Message); err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// SubmitRevealedCards is the oracle's reveal callback. Re-delivery is a
// no-op; a hand-number mismatch is rejected as stale.
func (h *Handlers) SubmitRevealedCards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HandNumber uint64      `json:"hand_number"`
			Slots      []int       `json:"slots"`
			Values     []game.Card `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		tableID := chi.URLParam(r, "table_id")
		if err := h.reg.SubmitRevealedCards(r.Context(), tableID, req.HandNumber, req.Slots, req.Values); err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// SubmitShowdown is the oracle's settlement callback. A duplicate for an
// already settled hand succeeds without changing anything.
func (h *Handlers) SubmitShowdown() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req showdownCallback
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		tableID := chi.URLParam(r, "table_id")
		if err := h.reg.SubmitShowdown(r.Context(), tableID, req.HandNumber, req.toResult()); err != nil {
			status, code := mapErr(err)
			WriteHTTPError(w, status, code)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
