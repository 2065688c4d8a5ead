// Package services содержит бизнес-логику жизненного цикла компании:
// регистрацию, модерацию, профиль, подписку и публичную страницу.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/dsar-portal/internal/billing"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/slugify"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// CompanyRepository определяет методы для работы с компаниями в хранилище.
type CompanyRepository interface {
	// CreateCompany добавляет новую компанию и возвращает её UID.
	CreateCompany(ctx context.Context, c models.Company) (string, error)
	// GetCompany возвращает компанию по UID.
	GetCompany(ctx context.Context, companyUID string) (*models.Company, error)
	// GetCompanyByOwner возвращает компанию по UID владельца.
	GetCompanyByOwner(ctx context.Context, ownerUID string) (*models.Company, error)
	// GetCompanyBySlug возвращает компанию по публичному slug.
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	// UpdateCompanyProfile обновляет редактируемые поля профиля.
	UpdateCompanyProfile(ctx context.Context, companyUID string, c models.Company) error
	// SetCompanyStatus выставляет статус модерации и, при одобрении, slug.
	SetCompanyStatus(ctx context.Context, companyUID string, status models.CompanyStatus, slug *string) error
	// SetCompanySubscription обновляет статус и срок подписки.
	SetCompanySubscription(ctx context.Context, companyUID string, status models.SubscriptionStatus, endDate *time.Time) error
	// ListCompaniesByStatus возвращает компании с заданным статусом.
	ListCompaniesByStatus(ctx context.Context, status models.CompanyStatus) ([]*models.Company, error)
	// ListAllCompanies возвращает все компании.
	ListAllCompanies(ctx context.Context) ([]*models.Company, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CompanyService реализует жизненный цикл компании и шлюз подписки.
type CompanyService struct {
	repo     CompanyRepository
	cache    Cache
	provider billing.Provider
	log      *slog.Logger
}

// NewCompanyService создает новый экземпляр CompanyService.
func NewCompanyService(repo CompanyRepository, cache Cache, provider billing.Provider, log *slog.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		cache:    cache,
		provider: provider,
		log:      log,
	}
}

func slugCacheKey(slug string) string {
	return fmt.Sprintf("company:slug:%s", slug)
}

func companyFromDummy(req models.DummyCompany) models.Company {
	c := models.Company{
		Name:           req.Name,
		Representation: models.RepresentationEU,
	}
	if req.Representation != "" {
		c.Representation = models.Representation(req.Representation)
	}
	if req.Address != "" {
		c.Address = &req.Address
	}
	if req.Email != "" {
		c.Email = &req.Email
	}
	if req.Phone != "" {
		c.Phone = &req.Phone
	}
	if req.EmployeesCount != 0 {
		c.EmployeesCount = &req.EmployeesCount
	}
	if req.Field != "" {
		c.Field = &req.Field
	}
	if req.Logo != "" {
		c.Logo = &req.Logo
	}
	return c
}

// Register регистрирует компанию владельца в статусе pending, без slug.
//
// Повторная регистрация для того же владельца возвращает models.ErrDuplicate:
// уникальность owner_uid обеспечивает хранилище, поэтому гонки
// "проверил-затем-создал" здесь нет.
func (s *CompanyService) Register(ctx context.Context, ownerUID string, req models.DummyCompany) (*models.Company, error) {
	c := companyFromDummy(req)
	c.OwnerUID = ownerUID
	c.Status = models.CompanyStatusPending
	c.SubscriptionStatus = models.SubscriptionNone

	uid, err := s.repo.CreateCompany(ctx, c)
	if err != nil {
		return nil, err
	}
	s.log.Info("registered new company", slog.String("company_uid", uid))
	return s.repo.GetCompany(ctx, uid)
}

// Approve одобряет компанию и присваивает ей slug.
//
// Slug строится из названия с случайным суффиксом, поэтому компании
// с одинаковыми названиями получают разные slug. Присваивается он ровно
// один раз и дальше не меняется.
func (s *CompanyService) Approve(ctx context.Context, companyUID string) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, companyUID)
	if err != nil {
		return nil, err
	}

	slug := company.Slug
	if slug == nil {
		generated, err := slugify.New(company.Name)
		if err != nil {
			return nil, err
		}
		slug = &generated
	}

	if err := s.repo.SetCompanyStatus(ctx, companyUID, models.CompanyStatusApproved, slug); err != nil {
		return nil, err
	}
	s.log.Info("approved company",
		slog.String("company_uid", companyUID), slog.String("slug", *slug))

	if err := s.cache.Invalidate(slugCacheKey(*slug)); err != nil {
		s.log.Warn("failed to invalidate company cache", slog.Any("err", err))
	}
	return s.repo.GetCompany(ctx, companyUID)
}

// Reject отклоняет компанию. Текущий статус не проверяется: admin UI
// предлагает отклонение только для pending, и компания из этого состояния
// уже не возвращается.
func (s *CompanyService) Reject(ctx context.Context, companyUID string) (*models.Company, error) {
	if err := s.repo.SetCompanyStatus(ctx, companyUID, models.CompanyStatusRejected, nil); err != nil {
		return nil, err
	}
	s.log.Info("rejected company", slog.String("company_uid", companyUID))

	company, err := s.repo.GetCompany(ctx, companyUID)
	if err != nil {
		return nil, err
	}
	if company.Slug != nil {
		if err := s.cache.Invalidate(slugCacheKey(*company.Slug)); err != nil {
			s.log.Warn("failed to invalidate company cache", slog.Any("err", err))
		}
	}
	return company, nil
}

// Update обновляет профиль компании текущего владельца.
// Статус, slug и подписка не затрагиваются.
func (s *CompanyService) Update(ctx context.Context, ownerUID string, req models.DummyCompany) (*models.Company, error) {
	company, err := s.repo.GetCompanyByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}

	updated := companyFromDummy(req)
	if err := s.repo.UpdateCompanyProfile(ctx, company.UID, updated); err != nil {
		return nil, err
	}

	if company.Slug != nil {
		if err := s.cache.Invalidate(slugCacheKey(*company.Slug)); err != nil {
			s.log.Warn("failed to invalidate company cache", slog.Any("err", err))
		}
	}
	return s.repo.GetCompany(ctx, company.UID)
}

// GetByOwner возвращает компанию текущего владельца.
func (s *CompanyService) GetByOwner(ctx context.Context, ownerUID string) (*models.Company, error) {
	return s.repo.GetCompanyByOwner(ctx, ownerUID)
}

// GetPublicBySlug возвращает публичное представление компании для страницы
// подачи запросов, используя кеш или хранилище. Страница доступна и для
// неактивного портала: поле PortalActive сообщает клиенту, что форма
// подачи закрыта, проверка активности выполняется при самой подаче.
func (s *CompanyService) GetPublicBySlug(ctx context.Context, slug string) (*models.PublicCompany, error) {
	var cached models.PublicCompany
	key := slugCacheKey(slug)
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("company cache read failed", slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	company, err := s.repo.GetCompanyBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	public := company.Public()
	if err := s.cache.Set(key, public, time.Hour); err != nil {
		s.log.Warn("failed to cache company", slog.String("key", key), slog.Any("err", err))
	}
	return public, nil
}

// ActivateSubscription проводит оплату подписки через провайдера
// и записывает итог. Доступна только владельцу и только после одобрения.
func (s *CompanyService) ActivateSubscription(ctx context.Context, ownerUID string) (*models.Company, error) {
	company, err := s.repo.GetCompanyByOwner(ctx, ownerUID)
	if err != nil {
		return nil, err
	}
	if company.Status != models.CompanyStatusApproved {
		return nil, models.ErrForbidden
	}

	outcome, err := s.provider.Activate(ctx, company.UID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetCompanySubscription(ctx, company.UID, outcome.Status, &outcome.EndDate); err != nil {
		return nil, err
	}
	s.log.Info("activated subscription",
		slog.String("company_uid", company.UID), slog.String("status", string(outcome.Status)))

	if company.Slug != nil {
		if err := s.cache.Invalidate(slugCacheKey(*company.Slug)); err != nil {
			s.log.Warn("failed to invalidate company cache", slog.Any("err", err))
		}
	}
	return s.repo.GetCompany(ctx, company.UID)
}

// ListPending возвращает компании, ожидающие модерации.
func (s *CompanyService) ListPending(ctx context.Context) ([]*models.Company, error) {
	return s.repo.ListCompaniesByStatus(ctx, models.CompanyStatusPending)
}

// ListAll возвращает все компании.
func (s *CompanyService) ListAll(ctx context.Context) ([]*models.Company, error) {
	return s.repo.ListAllCompanies(ctx)
}
