package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

const companyColumns = `uid, owner_uid, name, address, email, phone, employees_count,
	field, representation, logo, status, slug, subscription_status,
	subscription_end_date, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(&c.UID, &c.OwnerUID, &c.Name, &c.Address, &c.Email, &c.Phone,
		&c.EmployeesCount, &c.Field, &c.Representation, &c.Logo, &c.Status,
		&c.Slug, &c.SubscriptionStatus, &c.SubscriptionEndDate,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCompany сохраняет новую компанию в статусе pending и возвращает её UID.
//
// Уникальный индекс на owner_uid гарантирует не более одной компании
// на владельца: повторная вставка возвращает models.ErrDuplicate.
func (s *Storage) CreateCompany(ctx context.Context, c models.Company) (string, error) {
	const op = "storage.CreateCompany"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO companies (owner_uid, name, address, email, phone,
			      employees_count, field, representation, logo, status, subscription_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		c.OwnerUID, c.Name, c.Address, c.Email, c.Phone, c.EmployeesCount,
		c.Field, c.Representation, c.Logo, c.Status, c.SubscriptionStatus).Scan(&newUID); err != nil {
		return "", wrapErr(op, err)
	}
	return newUID, nil
}

// GetCompany возвращает компанию по её UID.
func (s *Storage) GetCompany(ctx context.Context, companyUID string) (*models.Company, error) {
	const op = "storage.GetCompany"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + companyColumns + ` FROM companies WHERE uid = $1`
	c, err := scanCompany(s.DB.QueryRowContext(ctx, query, companyUID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// GetCompanyByOwner возвращает компанию по UID её владельца.
func (s *Storage) GetCompanyByOwner(ctx context.Context, ownerUID string) (*models.Company, error) {
	const op = "storage.GetCompanyByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + companyColumns + ` FROM companies WHERE owner_uid = $1`
	c, err := scanCompany(s.DB.QueryRowContext(ctx, query, ownerUID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// GetCompanyBySlug возвращает компанию по её публичному slug.
func (s *Storage) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	const op = "storage.GetCompanyBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`
	c, err := scanCompany(s.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// UpdateCompanyProfile обновляет редактируемые поля профиля компании.
// Статус, slug и подписка этим запросом не затрагиваются.
func (s *Storage) UpdateCompanyProfile(ctx context.Context, companyUID string, c models.Company) error {
	const op = "storage.UpdateCompanyProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE companies
			  SET name = $1, address = $2, email = $3, phone = $4,
			      employees_count = $5, field = $6, representation = $7, logo = $8,
			      updated_at = now()
			  WHERE uid = $9`
	result, err := s.DB.ExecContext(ctx, query,
		c.Name, c.Address, c.Email, c.Phone, c.EmployeesCount, c.Field,
		c.Representation, c.Logo, companyUID)
	if err != nil {
		return wrapErr(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// SetCompanyStatus выставляет статус модерации; slug передаётся только
// при одобрении и записывается ровно один раз.
func (s *Storage) SetCompanyStatus(ctx context.Context, companyUID string, status models.CompanyStatus, slug *string) error {
	const op = "storage.SetCompanyStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE companies
			  SET status = $1, slug = COALESCE($2, slug), updated_at = now()
			  WHERE uid = $3`
	result, err := s.DB.ExecContext(ctx, query, status, slug, companyUID)
	if err != nil {
		return wrapErr(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// SetCompanySubscription обновляет статус подписки и дату её окончания.
func (s *Storage) SetCompanySubscription(ctx context.Context, companyUID string, status models.SubscriptionStatus, endDate *time.Time) error {
	const op = "storage.SetCompanySubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE companies
			  SET subscription_status = $1, subscription_end_date = $2, updated_at = now()
			  WHERE uid = $3`
	result, err := s.DB.ExecContext(ctx, query, status, endDate, companyUID)
	if err != nil {
		return wrapErr(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// ListCompaniesByStatus возвращает компании с заданным статусом модерации,
// новые первыми.
func (s *Storage) ListCompaniesByStatus(ctx context.Context, status models.CompanyStatus) ([]*models.Company, error) {
	const op = "storage.ListCompaniesByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + companyColumns + `
			  FROM companies
			  WHERE status = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllCompanies возвращает все компании, новые первыми.
func (s *Storage) ListAllCompanies(ctx context.Context) ([]*models.Company, error) {
	const op = "storage.ListAllCompanies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + companyColumns + `
			  FROM companies
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
