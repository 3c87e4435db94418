package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/go-accounts-api/internal/application/registration"
	"github.com/go-accounts-api/internal/application/session"
	"github.com/go-accounts-api/internal/application/user"
	"github.com/go-accounts-api/internal/config"
	"github.com/go-accounts-api/internal/transport/http/handler"
	appmiddleware "github.com/go-accounts-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", appmiddleware.AccessTokenHeader, appmiddleware.RefreshTokenHeader},
		ExposedHeaders:   []string{appmiddleware.AccessTokenHeader, appmiddleware.RefreshTokenHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	registrationSvc := registration.NewService(registration.ServiceDeps{
		UserRepo:    deps.UserRepo,
		TicketCodec: deps.TicketCodec,
		Mailer:      deps.Mailer,
		SMSSender:   deps.SMSSender,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		UserRepo:     deps.UserRepo,
		AccessCodec:  deps.AccessCodec,
		RefreshCodec: deps.RefreshCodec,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		ObjectStore: deps.ObjectStore,
	})

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(registrationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	userH := handler.NewUserHandler(userSvc)

	guard := appmiddleware.Guard(sessionSvc)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/accounts/register", accountH.Register)
		r.With(sensitiveRL.Limit).Post("/accounts/activate", accountH.Activate)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)

		// ── Guarded routes: every call re-verifies and rotates the pair ──────
		r.Group(func(r chi.Router) {
			r.Use(guard)

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			r.Get("/users", userH.List)
			r.Get("/users/{id}", userH.Get)
			r.Post("/users/avatar", userH.UploadAvatar)
		})
	})

	return r
}
