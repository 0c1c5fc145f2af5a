package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quickbite-orders/internal/http/handlers"
	mw "quickbite-orders/internal/http/middleware"
	"quickbite-orders/internal/http/middleware/ratelimit"
	"quickbite-orders/internal/logx"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(
	logger logx.Logger,
	limiter *ratelimit.Middleware,
	base *handlers.Handlers,
	orderHandler *handlers.OrderHandler,
	quoteHandler *handlers.QuoteHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(mw.Observability(logger))
	if limiter != nil {
		r.Use(limiter.Handler())
	}

	r.Post("/quote", quoteHandler.Quote)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.Checkout)
		r.Get("/", orderHandler.List)
		r.Get("/{id}", orderHandler.GetByID)
		r.Post("/{id}/advance", orderHandler.Advance)
		r.Post("/{id}/cancel", orderHandler.Cancel)
		r.Post("/{id}/complete", orderHandler.Complete)
		r.Post("/{id}/reorder", orderHandler.Reorder)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ping", base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(base.HealthcheckHead))
	r.NotFound(http.HandlerFunc(base.NotFound))

	return r
}
