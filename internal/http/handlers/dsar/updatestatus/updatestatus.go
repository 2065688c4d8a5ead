// Package updatestatus реализует HTTP-обработчик смены статуса DSAR-запроса.
//
// Статус может меняться между любыми допустимыми значениями. Заметки
// перезаписываются только если переданы в теле запроса.
package updatestatus

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

	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/http/response"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
	dsar "github.com/magabrotheeeer/dsar-portal/internal/services/dsar"
)

// Request — структура входных данных для смены статуса.
type Request struct {
	Status models.RequestStatus `json:"status" validate:"required,oneof=open in_progress in_review closed"`
	Notes  *string              `json:"notes,omitempty"`
}

// Service описывает интерфейс смены статуса DSAR-запроса.
type Service interface {
	UpdateStatus(ctx context.Context, actor dsar.Actor, requestUID string,
		status models.RequestStatus, notes *string) (*models.Request, error)
}

// Handler обрабатывает HTTP-запросы на смену статуса.
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
// @Summary Update a request status
// @Description Changes the request status and optionally replaces triage notes.
// @Tags Requests
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param uid path string true "Request UID"
// @Param request body Request true "New status and optional notes"
// @Success 200 {object} models.Request "Updated request"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} response.ErrorResponse "Request belongs to another company"
// @Failure 404 {object} response.ErrorResponse "Request not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /requests/{uid}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dsar.updatestatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, role, ok := middlewarectx.ActorFromContext(r.Context())
	if !ok {
		log.Error("missing user identity in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	requestUID := chi.URLParam(r, "uid")
	if requestUID == "" {
		log.Error("missing request uid in path")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing request uid"))
		return
	}

	var req Request
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

	actor := dsar.Actor{UserUID: uid, Role: role}
	updated, err := h.service.UpdateStatus(r.Context(), actor, requestUID, req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Warn("request not found", slog.String("uid", requestUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("request not found"))
		case errors.Is(err, models.ErrForbidden):
			log.Warn("access to request denied",
				slog.String("uid", requestUID), slog.String("user_uid", uid))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
		default:
			log.Error("failed to update request status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update request"))
		}
		return
	}

	log.Info("updated request status",
		slog.String("uid", updated.UID), slog.String("status", string(updated.Status)))
	render.JSON(w, r, response.OKWithData(updated))
}
