// Package subscriptiontracker предоставляет маршруты для основного приложения.
package subscriptiontracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/subscription-tracker/docs"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/signin"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/listmy"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/subscription-tracker/internal/services/auth"
	subservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Эндпоинты регистрации и входа намеренно вне группы с JWT middleware:
// они должны быть доступны без токена.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, subscriptionService *subservice.SubscriptionService, db health.Pinger) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/sign-up", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/sign-in", signin.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/subscriptions", list.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/user/me", listmy.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/{id}", read.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
