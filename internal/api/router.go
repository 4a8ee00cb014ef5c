package api

import (
	"net/http"
	"time"
	"twitter_app/internal/api/handler"
	"twitter_app/internal/api/middleware"
	"twitter_app/internal/app/service"
	"twitter_app/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	sessionService *service.SessionService,
	userService *service.UserService,
	micropostService *service.MicropostService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Session token verification. The token lives in the session cookie, so
	// the verifier gets a cookie-reading find function instead of the
	// default Authorization-header lookup. Verification failure is fine
	// here; the signed-in gate decides what happens downstream.
	r.Use(jwtauth.Verify(security.TokenAuth, security.TokenFromSessionCookie))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(userService, authService, sessionService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// User routes (profile public, the rest behind gates)
		userHandler := handler.NewUserHandler(userService, micropostService, sessionService)
		v1.Route("/users", userHandler.RegisterRoutes)

		// Micropost routes (authenticated)
		micropostHandler := handler.NewMicropostHandler(micropostService)
		v1.Group(func(signedIn chi.Router) {
			signedIn.Use(middleware.RequireSignIn(sessionService))
			signedIn.Route("/microposts", micropostHandler.RegisterRoutes)
			signedIn.Get("/feed", micropostHandler.Feed)
		})
	})

	return r
}
