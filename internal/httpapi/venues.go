package httpapi

import (
	"net/http"

	"boxoffice/internal/domain"
)

type venueRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Capacity   *int   `json:"capacity"`
	Type       string `json:"type"`
	Facilities string `json:"facilities"`
}

func (req venueRequest) toDomain() *domain.Venue {
	return &domain.Venue{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		Capacity:   req.Capacity,
		Type:       req.Type,
		Facilities: req.Facilities,
	}
}

func (s *Server) listVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Venue{"venues": venues})
}

func (s *Server) createVenue(w http.ResponseWriter, r *http.Request) {
	var req venueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	venue, err := s.venues.Create(r.Context(), req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, venue)
}

func (s *Server) getVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) updateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req venueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	venue, err := s.venues.Update(r.Context(), id, req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) deleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := s.venues.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
