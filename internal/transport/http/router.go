package httptransport

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Ololadestephen/EncryptedPoker/internal/registry"
)

func NewRouter(reg *registry.Registry) *chi.Mux {
	h := NewHandlers(reg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", h.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())

		r.Post("/tables", h.CreateTable())
		r.Get("/tables", h.ListTables())
		r.Post("/tables/{table_id}/join", h.JoinTable())
		r.Post("/tables/{table_id}/start", h.StartGame())
		r.Post("/tables/{table_id}/actions", h.SubmitAction())
		r.Post("/tables/{table_id}/advance", h.RequestStreetAdvance())
		r.Get("/tables/{table_id}/snapshot", h.TableSnapshot())
		r.Get("/tables/{table_id}/events", h.Events())
		r.Get("/tables/{table_id}/results/{hand_number}", h.HandResult())
		r.Post("/tables/{table_id}/react", h.React())
		r.Post("/tables/{table_id}/chat", h.Chat())

		r.Route("/oracle", func(r chi.Router) {
			r.Post("/tables/{table_id}/reveal", h.SubmitRevealedCards())
			r.Post("/tables/{table_id}/showdown", h.SubmitShowdown())
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("route walk failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	for _, rd := range routes {
		log.Info().Str("method", rd.Method).Str("path", rd.Path).Msg("route")
	}
}
