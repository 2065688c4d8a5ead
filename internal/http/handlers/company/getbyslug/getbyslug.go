// Package getbyslug реализует публичный HTTP-обработчик страницы портала.
//
// Возвращает публичный профиль компании по slug. Доступен без аутентификации
// и для неактивных порталов: признак portal_active сообщает клиенту,
// принимает ли форма новые запросы.
package getbyslug

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dsar-portal/internal/http/response"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Service описывает интерфейс чтения публичного профиля портала.
type Service interface {
	GetPublicBySlug(ctx context.Context, slug string) (*models.PublicCompany, error)
}

// Handler обрабатывает публичные HTTP-запросы на страницу портала.
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
// @Summary Get a public portal page
// @Description Returns the public company profile; portal_active reports whether submissions are accepted.
// @Tags Portal
// @Produce  json
// @Param slug path string true "Portal slug"
// @Success 200 {object} models.PublicCompany "Public company profile"
// @Failure 404 {object} response.ErrorResponse "Portal not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /c/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.getbyslug"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		log.Error("missing slug in path")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing slug"))
		return
	}

	company, err := h.service.GetPublicBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("portal not found", slog.String("slug", slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("portal not found"))
			return
		}
		log.Error("failed to get portal page", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get portal page"))
		return
	}

	render.JSON(w, r, response.OKWithData(company))
}
