// Package my реализует HTTP-обработчик просмотра компании владельца.
package my

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

// Service описывает интерфейс чтения компании владельца.
type Service interface {
	GetByOwner(ctx context.Context, ownerUID string) (*models.Company, error)
}

// Handler обрабатывает HTTP-запросы на чтение компании владельца.
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
// @Summary Get the owner's company
// @Description Returns the full company record of the authenticated owner.
// @Tags Companies
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} models.Company "Company"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} response.ErrorResponse "Company not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /companies/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.my"
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

	company, err := h.service.GetByOwner(r.Context(), ownerUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("company not found", slog.String("owner_uid", ownerUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("company not found"))
			return
		}
		log.Error("failed to get company", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get company"))
		return
	}

	render.JSON(w, r, response.OKWithData(company))
}
