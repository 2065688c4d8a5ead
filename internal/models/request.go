// Package models содержит доменную модель запроса субъекта данных (DSAR)
// и вспомогательные типы для работы с данными из внешних источников.
package models

import "time"

// RequestStatus статус обработки DSAR-запроса.
//
// Это плоская метка, а не строго упорядоченный воркфлоу: уполномоченный
// сотрудник может выставить любое значение из любого текущего состояния.
type RequestStatus string

const (
	// RequestStatusOpen новый запрос, ещё не взят в работу.
	RequestStatusOpen RequestStatus = "open"
	// RequestStatusInProgress запрос в работе.
	RequestStatusInProgress RequestStatus = "in_progress"
	// RequestStatusInReview запрос на проверке.
	RequestStatusInReview RequestStatus = "in_review"
	// RequestStatusClosed запрос закрыт.
	RequestStatusClosed RequestStatus = "closed"
)

// Valid проверяет, что статус входит в замкнутый набор значений.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusInProgress, RequestStatusInReview, RequestStatusClosed:
		return true
	}
	return false
}

// Request представляет запрос субъекта данных к компании.
//
// Создаётся только анонимной подачей через публичную страницу компании,
// изменяется только операциями смены статуса, никогда не удаляется.
type Request struct {
	UID            string        `json:"uid"`             // Уникальный идентификатор запроса
	CompanyUID     string        `json:"company_uid"`     // Идентификатор компании-адресата
	RequesterName  string        `json:"requester_name"`  // Имя заявителя
	RequesterEmail string        `json:"requester_email"` // Почта заявителя
	RequesterPhone string        `json:"requester_phone"` // Телефон заявителя
	RequestText    string        `json:"request_text"`    // Текст запроса
	Status         RequestStatus `json:"status"`          // Текущий статус обработки
	Notes          *string       `json:"notes,omitempty"` // Заметки сотрудника (опционально)
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// DummyRequest используется для приёма DSAR-запроса из JSON,
// прежде чем конвертировать его в Request.
type DummyRequest struct {
	RequesterName  string `json:"requester_name" validate:"required,min=2"`   // Имя, минимум 2 символа
	RequesterEmail string `json:"requester_email" validate:"required,email"`  // Корректный email
	RequesterPhone string `json:"requester_phone" validate:"required,min=10"` // Телефон, минимум 10 символов
	RequestText    string `json:"request_text" validate:"required,min=10"`    // Текст, минимум 10 символов
}

// RequestNotification сообщение о новом запросе для очереди уведомлений.
type RequestNotification struct {
	RequestUID     string `json:"request_uid"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	CompanyName    string `json:"company_name"`
}
