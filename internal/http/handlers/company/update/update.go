// Package update реализует HTTP-обработчик изменения профиля компании.
//
// Обновляются только поля профиля. Статус, slug и подписка через этот
// обработчик не меняются.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/http/response"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Service описывает интерфейс бизнес-логики обновления компании.
type Service interface {
	Update(ctx context.Context, ownerUID string, req models.DummyCompany) (*models.Company, error)
}

// Handler обрабатывает HTTP-запросы на обновление профиля компании.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики компаний
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
// @Summary Update the owner's company profile
// @Description Updates profile fields of the authenticated owner's company.
// @Tags Companies
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyCompany true "Company profile"
// @Success 200 {object} models.Company "Updated company"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} response.ErrorResponse "Company not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /companies/my [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.update"
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

	var req models.DummyCompany
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

	company, err := h.service.Update(r.Context(), ownerUID, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Error("company not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("company not found"))
			return
		}
		log.Error("failed to update company", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update company"))
		return
	}

	log.Info("updated company profile", slog.String("uid", company.UID))
	render.JSON(w, r, response.OKWithData(company))
}
