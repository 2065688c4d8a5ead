// Package models содержит доменные модели портала DSAR: пользователей,
// компании и запросы субъектов данных. Структуры используются
// в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Role роль пользователя системы.
type Role string

const (
	// RoleAdmin администратор портала, модерирует компании и видит все запросы.
	RoleAdmin Role = "admin"
	// RoleOwner владелец компании, управляет своей компанией и её запросами.
	RoleOwner Role = "owner"
)

// Valid проверяет, что роль входит в замкнутый набор значений.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOwner
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля пользователя
	Role         Role      // Роль пользователя, admin или owner
	CreatedAt    time.Time // Дата создания учётной записи
}
