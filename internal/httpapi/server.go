package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"boxoffice/internal/clock"
	"boxoffice/internal/domain"
)

// EventService captures the inventory operations exposed over HTTP.
type EventService interface {
	Create(ctx context.Context, candidate *domain.Event) (domain.Event, error)
	Update(ctx context.Context, id int64, candidate *domain.Event) (domain.Event, error)
	SellTickets(ctx context.Context, eventID int64, quantity int) (domain.Event, error)
	RefundTickets(ctx context.Context, eventID int64, quantity int) (domain.Event, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Event, error)
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
}

// VenueService captures venue management operations.
type VenueService interface {
	Create(ctx context.Context, candidate *domain.Venue) (domain.Venue, error)
	Update(ctx context.Context, id int64, candidate *domain.Venue) (domain.Venue, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	events EventService
	venues VenueService
	clock  clock.Clock
	health Pinger
	logger zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for failed requests.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock sets the time source used for the "upcoming" list filter.
func WithClock(clk clock.Clock) Option {
	return func(s *Server) {
		s.clock = clk
	}
}

// WithHealthCheck makes /health report 503 when p cannot be reached.
func WithHealthCheck(p Pinger) Option {
	return func(s *Server) {
		s.health = p
	}
}

// New configures a Server with the given services.
func New(events EventService, venues VenueService, opts ...Option) *Server {
	s := &Server{
		events: events,
		venues: venues,
		clock:  clock.NewSystem(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes exposes every HTTP handler on a new router.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	s.Register(router)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found", Code: string(domain.KindNotFound)})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed", Code: "method_not_allowed"})
	})
	return router
}

// Register mounts the API routes on router.
func (s *Server) Register(router *mux.Router) {
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/events", s.listEvents).Methods(http.MethodGet)
	api.HandleFunc("/events", s.createEvent).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}", s.getEvent).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}", s.updateEvent).Methods(http.MethodPut)
	api.HandleFunc("/events/{id}", s.deleteEvent).Methods(http.MethodDelete)
	api.HandleFunc("/events/{id}/sell", s.sellTickets).Methods(http.MethodPost)
	api.HandleFunc("/events/{id}/refund", s.refundTickets).Methods(http.MethodPost)

	api.HandleFunc("/venues", s.listVenues).Methods(http.MethodGet)
	api.HandleFunc("/venues", s.createVenue).Methods(http.MethodPost)
	api.HandleFunc("/venues/{id}", s.getVenue).Methods(http.MethodGet)
	api.HandleFunc("/venues/{id}", s.updateVenue).Methods(http.MethodPut)
	api.HandleFunc("/venues/{id}", s.deleteVenue).Methods(http.MethodDelete)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.logger.Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseIDParam reads the {id} path variable. It writes a 400 and returns
// false when the value is not an integer; range checks belong to the services.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid id: " + raw,
			Code:  string(domain.KindInvalidInput),
		})
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid JSON payload",
			Code:  string(domain.KindInvalidInput),
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
