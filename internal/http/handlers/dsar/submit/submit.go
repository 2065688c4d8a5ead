// Package submit реализует публичный HTTP-обработчик подачи DSAR-запроса.
//
// Субъект данных отправляет запрос через портал компании. Запрос принимается
// только при активном портале и создается в статусе open.
package submit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/dsar-portal/internal/http/response"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Service описывает интерфейс приема DSAR-запросов.
type Service interface {
	Submit(ctx context.Context, slug string, req models.DummyRequest) (*models.Request, error)
}

// Handler обрабатывает публичные HTTP-запросы на подачу DSAR-запроса.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики DSAR-запросов
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Submit a data subject request
// @Description Accepts a new request through the company's public portal.
// @Tags Portal
// @Accept  json
// @Produce  json
// @Param slug path string true "Portal slug"
// @Param request body models.DummyRequest true "Request payload"
// @Success 200 {object} models.Request "Created request"
// @Failure 400 {object} response.ErrorResponse "Invalid body or inactive portal"
// @Failure 404 {object} response.ErrorResponse "Portal not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /c/{slug}/requests [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dsar.submit"
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

	var req models.DummyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Submit(r.Context(), slug, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("portal not found", slog.String("slug", slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("portal not found"))
			return
		}
		if errors.Is(err, models.ErrInactivePortal) {
			log.Warn("portal is not active", slog.String("slug", slug))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("portal is not active"))
			return
		}
		log.Error("failed to submit request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not submit request"))
		return
	}

	log.Info("accepted new request",
		slog.String("uid", created.UID), slog.String("slug", slug))
	render.JSON(w, r, response.OKWithData(created))
}
