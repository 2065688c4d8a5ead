// Package pending реализует HTTP-обработчик списка заявок на модерации.
package pending

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dsar-portal/internal/http/response"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Service описывает интерфейс чтения заявок на модерации.
type Service interface {
	ListPending(ctx context.Context) ([]*models.Company, error)
}

// Handler обрабатывает HTTP-запросы на список заявок.
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
// @Summary List pending companies
// @Description Returns companies awaiting moderation, newest first.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Success 200 {array} models.Company "Pending companies"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} response.ErrorResponse "Admin role required"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/companies/pending [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.pending"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	companies, err := h.service.ListPending(r.Context())
	if err != nil {
		log.Error("failed to list pending companies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list companies"))
		return
	}

	render.JSON(w, r, response.OKWithData(companies))
}
