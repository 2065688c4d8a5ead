// Package portal предоставляет маршруты портала DSAR-запросов.
package portal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/approve"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/getbyslug"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/listall"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/my"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/pending"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/registercompany"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/reject"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/subscribe"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/company/update"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/dsar/list"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/dsar/submit"
	"github.com/magabrotheeeer/dsar-portal/internal/http/handlers/dsar/updatestatus"
	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
	authservice "github.com/magabrotheeeer/dsar-portal/internal/services/auth"
	companyservice "github.com/magabrotheeeer/dsar-portal/internal/services/company"
	dsarservice "github.com/magabrotheeeer/dsar-portal/internal/services/dsar"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokenParser middlewarectx.TokenParser,
	authService *authservice.AuthService, companyService *companyservice.CompanyService,
	requestService *dsarservice.RequestService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Публичный портал компании, с ограничением частоты анонимной подачи
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/c/{slug}", getbyslug.New(logger, companyService).ServeHTTP)
			r.Post("/c/{slug}/requests", submit.New(logger, requestService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))

			r.Post("/companies", registercompany.New(logger, companyService).ServeHTTP)
			r.Get("/companies/my", my.New(logger, companyService).ServeHTTP)
			r.Put("/companies/my", update.New(logger, companyService).ServeHTTP)
			r.Post("/companies/my/subscription", subscribe.New(logger, companyService).ServeHTTP)

			r.Get("/requests", list.New(logger, requestService).ServeHTTP)
			r.Put("/requests/{uid}/status", updatestatus.New(logger, requestService).ServeHTTP)

			// Администраторские конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))
				r.Get("/admin/companies", listall.New(logger, companyService).ServeHTTP)
				r.Get("/admin/companies/pending", pending.New(logger, companyService).ServeHTTP)
				r.Post("/admin/companies/{uid}/approve", approve.New(logger, companyService).ServeHTTP)
				r.Post("/admin/companies/{uid}/reject", reject.New(logger, companyService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
