// Package services содержит бизнес-логику жизненного цикла DSAR-запросов:
// публичную подачу, смену статуса и постраничные выборки.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/dsar-portal/internal/lib/sl"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// RequestRepository определяет методы для работы с запросами в хранилище.
type RequestRepository interface {
	// CreateRequest сохраняет новый запрос и возвращает его UID.
	CreateRequest(ctx context.Context, r models.Request) (string, error)
	// GetRequest возвращает запрос по UID.
	GetRequest(ctx context.Context, requestUID string) (*models.Request, error)
	// UpdateRequestStatus перезаписывает статус и, если переданы, заметки.
	UpdateRequestStatus(ctx context.Context, requestUID string, status models.RequestStatus, notes *string) (*models.Request, error)
	// ListRequestsByCompany возвращает страницу запросов компании и их общее число.
	ListRequestsByCompany(ctx context.Context, companyUID string, limit, offset int) ([]*models.Request, int, error)
	// ListAllRequests возвращает страницу всех запросов и их общее число.
	ListAllRequests(ctx context.Context, limit, offset int) ([]*models.Request, int, error)
	// GetCompanyBySlug возвращает компанию-адресата по slug.
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	// GetCompanyByOwner возвращает компанию по UID владельца.
	GetCompanyByOwner(ctx context.Context, ownerUID string) (*models.Company, error)
}

// Notifier публикует уведомление о новом запросе.
type Notifier interface {
	NotifyRequestCreated(msg models.RequestNotification) error
}

// Actor аутентифицированный сотрудник, выполняющий операцию.
type Actor struct {
	UserUID string
	Role    models.Role
}

// RequestService реализует жизненный цикл DSAR-запросов.
type RequestService struct {
	repo     RequestRepository
	notifier Notifier
	log      *slog.Logger
}

// NewRequestService создает новый экземпляр RequestService.
func NewRequestService(repo RequestRepository, notifier Notifier, log *slog.Logger) *RequestService {
	return &RequestService{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Submit создаёт запрос против компании с указанным slug.
//
// Требует активного портала: компания одобрена и подписка активна или
// пробная, иначе models.ErrInactivePortal и никакая запись не создаётся.
// Уведомление публикуется после записи и не влияет на её исход.
func (s *RequestService) Submit(ctx context.Context, slug string, req models.DummyRequest) (*models.Request, error) {
	company, err := s.repo.GetCompanyBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !company.PortalActive() {
		return nil, models.ErrInactivePortal
	}

	request := models.Request{
		CompanyUID:     company.UID,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		RequesterPhone: req.RequesterPhone,
		RequestText:    req.RequestText,
		Status:         models.RequestStatusOpen,
	}
	uid, err := s.repo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	s.log.Info("new dsar request submitted",
		slog.String("request_uid", uid), slog.String("company_uid", company.UID))

	if err := s.notifier.NotifyRequestCreated(models.RequestNotification{
		RequestUID:     uid,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		CompanyName:    company.Name,
	}); err != nil {
		s.log.Warn("failed to publish dsar notification", sl.Err(err))
	}

	return s.repo.GetRequest(ctx, uid)
}

// authorize проверяет, что актор вправе работать с запросами компании.
// Администратору доступно всё, владельцу — только его компания.
func (s *RequestService) authorize(ctx context.Context, actor Actor, companyUID string) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	company, err := s.repo.GetCompanyByOwner(ctx, actor.UserUID)
	if err != nil {
		return models.ErrForbidden
	}
	if company.UID != companyUID {
		return models.ErrForbidden
	}
	return nil
}

// UpdateStatus перезаписывает статус запроса. Любой из четырёх статусов
// допустим из любого текущего; заметки с nil остаются прежними.
func (s *RequestService) UpdateStatus(ctx context.Context, actor Actor, requestUID string, status models.RequestStatus, notes *string) (*models.Request, error) {
	request, err := s.repo.GetRequest(ctx, requestUID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, request.CompanyUID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateRequestStatus(ctx, requestUID, status, notes)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated dsar request status",
		slog.String("request_uid", requestUID), slog.String("status", string(status)))
	return updated, nil
}

// List возвращает страницу запросов в зависимости от роли актора:
// администратор видит все, владелец — запросы своей компании.
func (s *RequestService) List(ctx context.Context, actor Actor, limit, offset int) ([]*models.Request, int, error) {
	if actor.Role == models.RoleAdmin {
		return s.repo.ListAllRequests(ctx, limit, offset)
	}

	company, err := s.repo.GetCompanyByOwner(ctx, actor.UserUID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.ListRequestsByCompany(ctx, company.UID, limit, offset)
}
