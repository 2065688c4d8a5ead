// Package storage реализует хранилище данных на основе PostgreSQL
// для пользователей, компаний и DSAR-запросов. Предоставляет методы
// создания, чтения, обновления и постраничного чтения записей.
//
// Нарушения уникальных ограничений (email пользователя, владелец компании,
// slug) транслируются в models.ErrDuplicate, отсутствие записи — в
// models.ErrNotFound. Гарантия "одна компания на владельца" обеспечивается
// уникальным индексом на owner_uid, а не проверкой в коде: проверка перед
// вставкой имела бы гонку.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, компаниями и запросами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'companies'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table companies missing or query error: %w", err)
	}
	return nil
}

// wrapErr переводит ошибки драйвера в доменную таксономию.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", op, models.ErrDuplicate)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
