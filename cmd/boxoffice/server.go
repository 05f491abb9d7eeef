package main

import (
	"net/http"

	"boxoffice/internal/app/events"
	"boxoffice/internal/app/venues"
	"boxoffice/internal/clock"
	"boxoffice/internal/config"
	"boxoffice/internal/httpapi"
	"boxoffice/internal/logging"
	"boxoffice/internal/middleware"
)

func newHTTPHandler(cfg *config.Config, b *backend, logger *logging.Logger) http.Handler {
	clk := clock.NewSystem()

	eventSvc := events.New(b.events, clk, events.WithLogger(logger.Component("events")))
	venueSvc := venues.New(b.venues, clk, venues.WithLogger(logger.Component("venues")))

	opts := []httpapi.Option{
		httpapi.WithClock(clk),
		httpapi.WithLogger(logger.Component("http")),
	}
	if b.pinger != nil {
		opts = append(opts, httpapi.WithHealthCheck(b.pinger))
	}

	var handler http.Handler = httpapi.New(eventSvc, venueSvc, opts...).Routes()
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	return handler
}
