// Package list реализует HTTP-обработчик списка DSAR-запросов.
//
// Владелец видит запросы своей компании, администратор — все запросы.
// Список отдается постранично, от новых к старым.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/http/response"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
	dsar "github.com/magabrotheeeer/dsar-portal/internal/services/dsar"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает интерфейс чтения DSAR-запросов.
type Service interface {
	List(ctx context.Context, actor dsar.Actor, limit, offset int) ([]*models.Request, int, error)
}

// Handler обрабатывает HTTP-запросы на список DSAR-запросов.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики DSAR-запросов
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List data subject requests
// @Description Returns requests visible to the caller, newest first.
// @Tags Requests
// @Security BearerAuth
// @Produce  json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} map[string]any "Requests and total count"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /requests [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dsar.list"
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

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}

	actor := dsar.Actor{UserUID: uid, Role: role}
	requests, total, err := h.service.List(r.Context(), actor, limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("company not found for owner", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("company not found"))
			return
		}
		log.Error("failed to list requests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list requests"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"requests": requests,
		"total":    total,
	}))
}
