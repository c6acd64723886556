// Package commerce предоставляет маршруты для основного приложения.
package commerce

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/auth/login"
	registerhandler "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/commerce-backend/internal/http/handlers/health"
	ordercheckout "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/order/checkout"
	orderlist "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/order/list"
	orderread "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/order/read"
	orderremove "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/order/remove"
	orderupdate "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/order/update"
	productcreate "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/product/create"
	productlist "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/product/list"
	productread "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/product/read"
	productremove "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/product/remove"
	productupdate "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/product/update"
	userlist "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/user/read"
	userupdate "github.com/magabrotheeeer/commerce-backend/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/commerce-backend/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/commerce-backend/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/commerce-backend/internal/services/catalog"
	checkoutservice "github.com/magabrotheeeer/commerce-backend/internal/services/checkout"
	orderservice "github.com/magabrotheeeer/commerce-backend/internal/services/order"
	userservice "github.com/magabrotheeeer/commerce-backend/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokenParser middlewarectx.TokenParser,
	authService *authservice.Service, catalogService *catalogservice.Service,
	checkoutService *checkoutservice.Service, orderService *orderservice.Service,
	userService *userservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", registerhandler.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", loginhandler.New(logger, authService).ServeHTTP)
		r.Get("/products", productlist.New(logger, catalogService).ServeHTTP)
		r.Get("/products/{id}", productread.New(logger, catalogService).ServeHTTP)
		r.Get("/health", health.New())

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/checkout", ordercheckout.New(logger, checkoutService).ServeHTTP)
			r.Get("/orders", orderlist.New(logger, orderService).ServeHTTP)
			r.Get("/orders/{id}", orderread.New(logger, orderService).ServeHTTP)

			// Маршруты владельца профиля или администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireSelfOrAdmin(logger))
				r.Get("/users/{username}", userread.New(logger, userService).ServeHTTP)
				r.Patch("/users/{username}", userupdate.New(logger, userService).ServeHTTP)
			})

			// Административные маршруты
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Post("/products", productcreate.New(logger, catalogService).ServeHTTP)
				r.Patch("/products/{id}", productupdate.New(logger, catalogService).ServeHTTP)
				r.Delete("/products/{id}", productremove.New(logger, catalogService).ServeHTTP)
				r.Get("/users", userlist.New(logger, userService).ServeHTTP)
				r.Patch("/orders/{id}", orderupdate.New(logger, orderService).ServeHTTP)
				r.Delete("/orders/{id}", orderremove.New(logger, orderService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
