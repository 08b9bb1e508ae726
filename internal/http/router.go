package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redisadapter "github.com/sandeshlamsal/eventpasal/internal/adapters/redis"
	"github.com/sandeshlamsal/eventpasal/internal/observability"
)

func SetupRouter(h *Handlers, logger observability.Logger, verifier TokenVerifier, rl *redisadapter.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(AuthMiddleware(verifier))
	r.Use(RateLimitMiddleware(rl))

	r.Post("/v1/auth/signup", h.SignUp)
	r.Post("/v1/auth/login", h.SignIn)
	r.Post("/v1/auth/logout", h.SignOut)
	r.Get("/v1/auth/session", h.Session)

	r.Get("/v1/events", h.ListEvents)
	r.Get("/v1/events/upcoming", h.UpcomingEvents)
	r.Get("/v1/events/featured", h.FeaturedEvents)
	r.Get("/v1/events/mine", h.MyEvents)
	r.Get("/v1/events/{id}", h.GetEvent)
	r.Post("/v1/events", h.CreateEvent)
	r.Put("/v1/events/{id}", h.UpdateEvent)
	r.Delete("/v1/events/{id}", h.DeleteEvent)
	r.Post("/v1/events/{id}/register", h.RegisterFree)

	r.Post("/v1/payments", h.InitiatePayment)
	r.Get("/v1/bookings/{id}", h.GetBooking)
	r.Get("/v1/bookings", h.MyBookings)

	r.Get("/v1/notifications", h.Notifications)
	r.Post("/v1/notifications/{id}/read", h.MarkNotificationRead)
	r.Put("/v1/profile", h.UpdateProfile)

	r.Get("/v1/healthz", h.Healthz)
	r.Get("/v1/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
