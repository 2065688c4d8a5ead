// Package subscribe реализует HTTP-обработчик активации подписки.
//
// Подписка активируется через платежного провайдера и открывает публичный
// портал компании. Доступно только для одобренных компаний.
package subscribe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/http/response"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Service описывает интерфейс активации подписки.
type Service interface {
	ActivateSubscription(ctx context.Context, ownerUID string) (*models.Company, error)
}

// Handler обрабатывает HTTP-запросы на активацию подписки.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики компаний
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Activate the company subscription
// @Description Activates a subscription for the authenticated owner's approved company.
// @Tags Companies
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} models.Company "Company with active subscription"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} response.ErrorResponse "Company is not approved"
// @Failure 404 {object} response.ErrorResponse "Company not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /companies/my/subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerUID, _, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("missing user identity in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	company, err := h.service.ActivateSubscription(r.Context(), ownerUID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Warn("company not found", slog.String("owner_uid", ownerUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("company not found"))
		case errors.Is(err, models.ErrForbidden):
			log.Warn("company is not approved", slog.String("owner_uid", ownerUID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("company is not approved"))
		default:
			log.Error("failed to activate subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not activate subscription"))
		}
		return
	}

	log.Info("subscription activated", slog.String("uid", company.UID))
	render.JSON(w, r, response.OKWithData(company))
}
