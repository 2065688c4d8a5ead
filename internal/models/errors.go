// Package models определяет общую таксономию доменных ошибок.
// Сервисы возвращают эти значения, а HTTP-слой переводит их
// в коды ответов, не раскрывая внутренних деталей.
package models

import "errors"

var (
	// ErrNotFound запись с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate нарушение уникальности: почта уже занята
	// или у владельца уже есть компания.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalidCredentials неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden действие запрещено для текущей роли или владельца.
	ErrForbidden = errors.New("forbidden")
	// ErrInactivePortal публичный портал компании не принимает запросы:
	// компания не одобрена либо подписка не активна.
	ErrInactivePortal = errors.New("portal is not active")
)
