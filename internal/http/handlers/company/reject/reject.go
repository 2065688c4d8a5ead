// Package reject реализует HTTP-обработчик отклонения компании администратором.
package reject

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

// Service описывает интерфейс отклонения компании.
type Service interface {
	Reject(ctx context.Context, companyUID string) (*models.Company, error)
}

// Handler обрабатывает HTTP-запросы на отклонение компании.
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
// @Summary Reject a company
// @Description Moves the company to the rejected state.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param uid path string true "Company UID"
// @Success 200 {object} models.Company "Rejected company"
// @Failure 401 {object} response.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} response.ErrorResponse "Admin role required"
// @Failure 404 {object} response.ErrorResponse "Company not found"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /admin/companies/{uid}/reject [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.reject"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	companyUID := chi.URLParam(r, "uid")
	if companyUID == "" {
		log.Error("missing company uid in path")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing company uid"))
		return
	}

	company, err := h.service.Reject(r.Context(), companyUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("company not found", slog.String("uid", companyUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("company not found"))
			return
		}
		log.Error("failed to reject company", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reject company"))
		return
	}

	log.Info("company rejected", slog.String("uid", company.UID))
	render.JSON(w, r, response.OKWithData(company))
}
