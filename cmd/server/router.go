package main

import (
	"log/slog"
	"net/http"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
)

// newHandler builds the single catch-all route and its middleware chain.
// The returned func stops background work owned by the middleware.
func newHandler(cfg *config.Config, service *book.Service, logger *slog.Logger) (http.Handler, func()) {
	bookHandler := book.NewHTTPHandler(service, logger)

	router := http.NewServeMux()
	router.Handle("/", bookHandler.Routes())

	mws := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware,
	}

	stop := func() {}
	if cfg.RateLimit > 0 {
		limiter := httpx.NewRateLimitMiddleware(cfg.RateLimit, cfg.RateBurst, cfg.TrustProxy)
		mws = append(mws, limiter.Middleware)
		stop = limiter.Stop
	}

	return httpx.Chain(router, mws...), stop
}
