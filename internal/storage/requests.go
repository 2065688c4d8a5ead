package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

const requestColumns = `uid, company_uid, requester_name, requester_email,
	requester_phone, request_text, status, notes, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }) (*models.Request, error) {
	r := &models.Request{}
	err := row.Scan(&r.UID, &r.CompanyUID, &r.RequesterName, &r.RequesterEmail,
		&r.RequesterPhone, &r.RequestText, &r.Status, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRequest сохраняет новый DSAR-запрос и возвращает его UID.
func (s *Storage) CreateRequest(ctx context.Context, r models.Request) (string, error) {
	const op = "storage.CreateRequest"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO dsar_requests (company_uid, requester_name, requester_email,
			      requester_phone, request_text, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		r.CompanyUID, r.RequesterName, r.RequesterEmail, r.RequesterPhone,
		r.RequestText, r.Status).Scan(&newUID); err != nil {
		return "", wrapErr(op, err)
	}
	return newUID, nil
}

// GetRequest возвращает DSAR-запрос по его UID.
func (s *Storage) GetRequest(ctx context.Context, requestUID string) (*models.Request, error) {
	const op = "storage.GetRequest"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + ` FROM dsar_requests WHERE uid = $1`
	r, err := scanRequest(s.DB.QueryRowContext(ctx, query, requestUID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return r, nil
}

// UpdateRequestStatus перезаписывает статус запроса и, если переданы,
// заметки. Заметки с nil остаются прежними. История статусов не ведётся.
func (s *Storage) UpdateRequestStatus(ctx context.Context, requestUID string, status models.RequestStatus, notes *string) (*models.Request, error) {
	const op = "storage.UpdateRequestStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE dsar_requests
			  SET status = $1, notes = COALESCE($2, notes), updated_at = now()
			  WHERE uid = $3
			  RETURNING ` + requestColumns
	r, err := scanRequest(s.DB.QueryRowContext(ctx, query, status, notes, requestUID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return r, nil
}

// ListRequestsByCompany возвращает страницу запросов компании и их общее
// число, новые первыми.
func (s *Storage) ListRequestsByCompany(ctx context.Context, companyUID string, limit, offset int) ([]*models.Request, int, error) {
	const op = "storage.ListRequestsByCompany"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + `
			  FROM dsar_requests
			  WHERE company_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, companyUID, limit, offset)
	if err != nil {
		return nil, 0, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM dsar_requests WHERE company_uid = $1`
	if err = s.DB.QueryRowContext(ctx, countQuery, companyUID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// ListAllRequests возвращает страницу всех запросов и их общее число,
// новые первыми.
func (s *Storage) ListAllRequests(ctx context.Context, limit, offset int) ([]*models.Request, int, error) {
	const op = "storage.ListAllRequests"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + requestColumns + `
			  FROM dsar_requests
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err = s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM dsar_requests`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}
