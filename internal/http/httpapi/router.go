package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"donordash/internal/http/handlers"
	"donordash/internal/middleware"
)

// Options carries the router-level knobs that come from configuration.
type Options struct {
	Logger          zerolog.Logger
	CORSOrigins     []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/dashboard", app.Dashboard)
	r.Get("/v1/glossary", app.Glossary)

	r.Route("/v1/table", func(r chi.Router) {
		r.Get("/", app.Table)
		r.Get("/export", app.TableExport)
	})

	r.Post("/v1/reload", app.Reload)

	// The assistant proxies a paid API; it gets its own limiter.
	r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).
		Post("/v1/assistant", app.Assistant)

	return r
}
