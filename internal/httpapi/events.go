package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"boxoffice/internal/domain"
)

type eventRequest struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	EventDate     time.Time  `json:"event_date"`
	EventEndDate  *time.Time `json:"event_end_date"`
	Category      string     `json:"category"`
	TicketPrice   *float64   `json:"ticket_price"`
	TotalCapacity int        `json:"total_capacity"`
	VenueID       int64      `json:"venue_id"`
}

func (req eventRequest) toDomain() *domain.Event {
	return &domain.Event{
		Name:          req.Name,
		Description:   req.Description,
		EventDate:     req.EventDate,
		EventEndDate:  req.EventEndDate,
		Category:      req.Category,
		TicketPrice:   req.TicketPrice,
		TotalCapacity: req.TotalCapacity,
		VenueID:       req.VenueID,
	}
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var filter domain.EventFilter

	if raw := query.Get("venue_id"); raw != "" {
		venueID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, domain.InvalidEvent("venue_id", "must be an integer"))
			return
		}
		filter.VenueID = &venueID
	}
	if raw := query.Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, domain.InvalidEvent("active", "must be a boolean"))
			return
		}
		filter.ActiveOnly = active
	}
	if raw := query.Get("upcoming"); raw != "" {
		upcoming, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, domain.InvalidEvent("upcoming", "must be a boolean"))
			return
		}
		if upcoming {
			now := s.clock.Now()
			filter.Upcoming = &now
		}
	}

	filter.Search = query.Get("q")

	events, err := s.events.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Event{"events": events})
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := s.events.Create(r.Context(), req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	event, err := s.events.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := s.events.Update(r.Context(), id, req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := s.events.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sellTickets(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req quantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := s.events.SellTickets(r.Context(), id, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) refundTickets(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req quantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	event, err := s.events.RefundTickets(r.Context(), id, req.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
