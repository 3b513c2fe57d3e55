// Package api exposes the portfolio's REST surface: public content
// reads, throttled visitor submissions, and the cookie-authenticated
// admin interface.
package api

import (
	_ "embed"
	"log/slog"
	"net/http"
	"net/netip"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/jmcleod/folio/auth"
	"github.com/jmcleod/folio/content"
	"github.com/jmcleod/folio/ratelimit"
)

// API holds the dependencies needed by the REST handlers.
type API struct {
	store          *content.Store
	authority      *auth.Authority
	limiter        *ratelimit.Limiter
	audit          *auditLogger
	alertFn        AlertFunc
	trustedProxies []netip.Prefix
}

//go:embed openapi.yaml
var openapiSpec []byte

// Option configures the API instance.
type Option func(*API)

// WithLogger sets the structured logger for audit events.
// If not set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *API) {
		a.audit = newAuditLogger(logger)
	}
}

// WithTrustedProxies sets the CIDR ranges whose proxy headers are
// honored when resolving a client IP. Empty means headers are never
// trusted and RemoteAddr is always used.
func WithTrustedProxies(prefixes []netip.Prefix) Option {
	return func(a *API) {
		a.trustedProxies = prefixes
	}
}

// WithAlertFunc installs a callback invoked when anomaly thresholds are
// crossed (login failure spikes, submission floods).
func WithAlertFunc(fn AlertFunc) Option {
	return func(a *API) {
		a.alertFn = fn
	}
}

// New creates a new API instance.
func New(store *content.Store, authority *auth.Authority, opts ...Option) *API {
	a := &API{
		store:     store,
		authority: authority,
		limiter:   ratelimit.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.audit == nil {
		a.audit = newAuditLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}
	if a.alertFn != nil {
		a.audit.metrics = newMetricsCollector(a.alertFn)
	}
	return a
}

// Router returns a chi.Router with all API routes mounted.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(a.generalThrottleMiddleware)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/docs",
	}, nil))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/redoc",
	}, nil))

	r.Get("/health", a.Health)

	// Public content reads.
	r.Get("/profile", a.GetProfile)
	r.Get("/experiences", a.ListExperiences)
	r.Get("/technologies", a.ListTechnologies)
	r.Get("/projects", a.ListProjects)
	r.Get("/projects/featured", a.ListFeaturedProjects)
	r.Get("/fun-facts", a.ListFunFacts)
	r.Get("/education", a.ListEducation)
	r.Get("/certifications", a.ListCertifications)
	r.Get("/testimonials", a.ListTestimonials)
	r.Get("/reviews", a.ListApprovedReviews)
	r.Get("/stats", a.ListStats)

	// Throttled visitor submissions.
	r.Post("/contact", a.SubmitContact)
	r.Post("/reviews", a.SubmitReview)
	r.Post("/feedback", a.SubmitFeedback)

	// Admin session lifecycle.
	r.Post("/admin/login", a.Login)
	r.Get("/admin/verify", a.Verify)
	r.Post("/admin/logout", a.Logout)

	// Authenticated admin surface.
	r.Route("/admin", func(r chi.Router) {
		r.Use(a.AdminMiddleware)
		r.Use(a.CSRFMiddleware)
		r.Use(a.adminThrottleMiddleware)

		r.Put("/profile", a.AdminSaveProfile)

		r.Post("/experiences", a.AdminSaveExperience)
		r.Put("/experiences/{id}", a.AdminSaveExperience)
		r.Delete("/experiences/{id}", a.AdminDeleteExperience)

		r.Post("/technologies", a.AdminSaveTechnology)
		r.Put("/technologies/{id}", a.AdminSaveTechnology)
		r.Delete("/technologies/{id}", a.AdminDeleteTechnology)

		r.Post("/projects", a.AdminSaveProject)
		r.Put("/projects/{id}", a.AdminSaveProject)
		r.Delete("/projects/{id}", a.AdminDeleteProject)

		r.Post("/fun-facts", a.AdminSaveFunFact)
		r.Put("/fun-facts/{id}", a.AdminSaveFunFact)
		r.Delete("/fun-facts/{id}", a.AdminDeleteFunFact)

		r.Post("/education", a.AdminSaveEducation)
		r.Put("/education/{id}", a.AdminSaveEducation)
		r.Delete("/education/{id}", a.AdminDeleteEducation)

		r.Post("/certifications", a.AdminSaveCertification)
		r.Put("/certifications/{id}", a.AdminSaveCertification)
		r.Delete("/certifications/{id}", a.AdminDeleteCertification)

		r.Post("/testimonials", a.AdminSaveTestimonial)
		r.Put("/testimonials/{id}", a.AdminSaveTestimonial)
		r.Delete("/testimonials/{id}", a.AdminDeleteTestimonial)

		r.Put("/stats", a.AdminUpsertStat)
		r.Delete("/stats/{metric}", a.AdminDeleteStat)

		r.Get("/connections", a.AdminListConnections)
		r.Put("/connections/{id}/status", a.AdminUpdateConnectionStatus)
		r.Delete("/connections/{id}", a.AdminDeleteConnection)

		r.Get("/reviews", a.AdminListReviews)
		r.Put("/reviews/{id}/status", a.AdminUpdateReviewStatus)
		r.Delete("/reviews/{id}", a.AdminDeleteReview)

		r.Get("/feedback", a.AdminListFeedback)
		r.Put("/feedback/{id}/status", a.AdminUpdateFeedbackStatus)
		r.Delete("/feedback/{id}", a.AdminDeleteFeedback)
	})

	return r
}

// Health handles GET /health.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Configured: a.authority.Configured(),
	})
}
