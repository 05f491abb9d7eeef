package httpapi

import (
	"context"
	"errors"
	"net/http"

	"boxoffice/internal/domain"
	"boxoffice/internal/logging"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Field     string `json:"field,omitempty"`
	Requested *int   `json:"requested,omitempty"`
	Available *int   `json:"available,omitempty"`
}

func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInactiveEntity,
		domain.KindInsufficientInventory,
		domain.KindCapacityExceeded,
		domain.KindConflict:
		return http.StatusConflict
	case domain.KindTemporalViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was written.
const statusClientClosedRequest = 499

// writeError maps err to a status code by its kind. Internal errors are
// logged and their message is withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.writeContextError(w, r, err)
		return
	}

	kind := domain.KindOf(err)
	status := statusForKind(kind)

	resp := errorResponse{Error: err.Error(), Code: string(kind)}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}

	var insufficient *domain.InsufficientTicketsError
	if errors.As(err, &insufficient) {
		requested, available := insufficient.Requested, insufficient.Available
		resp.Requested = &requested
		resp.Available = &available
	}

	if status == http.StatusInternalServerError {
		l := logging.WithContext(r.Context(), s.logger)
		l.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		resp.Error = "internal server error"
		resp.Code = string(domain.KindInternal)
	}

	writeJSON(w, status, resp)
}

// writeContextError answers requests cut short by cancellation or timeout.
// These are not server faults, so they are logged below error level.
func (s *Server) writeContextError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := statusClientClosedRequest, errorResponse{Error: "request canceled", Code: "canceled"}
	if errors.Is(err, context.DeadlineExceeded) {
		status, resp = http.StatusServiceUnavailable, errorResponse{Error: "request timed out", Code: "timeout"}
	}

	l := logging.WithContext(r.Context(), s.logger)
	l.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request abandoned")

	writeJSON(w, status, resp)
}
