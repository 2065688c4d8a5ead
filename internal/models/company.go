// Package models содержит доменную модель компании и вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// CompanyStatus статус модерации компании.
type CompanyStatus string

const (
	// CompanyStatusPending компания ожидает решения администратора.
	CompanyStatusPending CompanyStatus = "pending"
	// CompanyStatusApproved компания одобрена, ей присвоен slug.
	CompanyStatusApproved CompanyStatus = "approved"
	// CompanyStatusRejected компания отклонена.
	CompanyStatusRejected CompanyStatus = "rejected"
)

// Valid проверяет, что статус входит в замкнутый набор значений.
func (s CompanyStatus) Valid() bool {
	return s == CompanyStatusPending || s == CompanyStatusApproved || s == CompanyStatusRejected
}

// SubscriptionStatus статус подписки компании на сервис.
type SubscriptionStatus string

const (
	// SubscriptionNone подписка не оформлялась.
	SubscriptionNone SubscriptionStatus = "none"
	// SubscriptionActive подписка оплачена и активна.
	SubscriptionActive SubscriptionStatus = "active"
	// SubscriptionTrialing действует пробный период.
	SubscriptionTrialing SubscriptionStatus = "trialing"
	// SubscriptionPastDue просрочена оплата.
	SubscriptionPastDue SubscriptionStatus = "past_due"
	// SubscriptionCanceled подписка отменена.
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// IsActive сообщает, даёт ли статус подписки доступ к публичному порталу.
func (s SubscriptionStatus) IsActive() bool {
	return s == SubscriptionActive || s == SubscriptionTrialing
}

// Representation регион представительства компании.
type Representation string

const (
	// RepresentationEU представительство в ЕС.
	RepresentationEU Representation = "EU"
	// RepresentationUK представительство в Великобритании.
	RepresentationUK Representation = "UK"
	// RepresentationEUUK представительство в обоих регионах.
	RepresentationEUUK Representation = "EU_UK"
)

// Valid проверяет, что регион входит в замкнутый набор значений.
func (r Representation) Valid() bool {
	return r == RepresentationEU || r == RepresentationUK || r == RepresentationEUUK
}

// Company представляет компанию, зарегистрированную владельцем.
//
// Инварианты: на одного владельца приходится не более одной компании
// (уникальность owner_uid обеспечивает хранилище); Slug присваивается ровно
// один раз, при переходе pending -> approved, и больше не меняется.
type Company struct {
	UID                 string             `json:"uid"`                             // Уникальный идентификатор компании
	OwnerUID            string             `json:"owner_uid"`                       // Идентификатор владельца (уникальный)
	Name                string             `json:"name"`                            // Название компании
	Address             *string            `json:"address,omitempty"`               // Адрес (опционально)
	Email               *string            `json:"email,omitempty"`                 // Контактная почта (опционально)
	Phone               *string            `json:"phone,omitempty"`                 // Контактный телефон (опционально)
	EmployeesCount      *int               `json:"employees_count,omitempty"`       // Число сотрудников (опционально)
	Field               *string            `json:"field,omitempty"`                 // Сфера деятельности (опционально)
	Representation      Representation     `json:"representation"`                  // Регион представительства
	Logo                *string            `json:"logo,omitempty"`                  // Ссылка на логотип (опционально)
	Status              CompanyStatus      `json:"status"`                          // Статус модерации
	Slug                *string            `json:"slug,omitempty"`                  // Публичный slug, nil до одобрения
	SubscriptionStatus  SubscriptionStatus `json:"subscription_status"`             // Статус подписки
	SubscriptionEndDate *time.Time         `json:"subscription_end_date,omitempty"` // Дата окончания подписки
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// PortalActive сообщает, принимает ли публичная страница компании новые
// запросы: компания должна быть одобрена, а подписка — активна или пробная.
func (c *Company) PortalActive() bool {
	return c.Status == CompanyStatusApproved && c.SubscriptionStatus.IsActive()
}

// DummyCompany используется для приёма профиля компании из JSON-запроса,
// прежде чем конвертировать его в Company.
type DummyCompany struct {
	Name           string `json:"name" validate:"required,min=2"`                    // Название компании
	Address        string `json:"address,omitempty" validate:"omitempty"`            // Адрес
	Email          string `json:"email,omitempty" validate:"omitempty,email"`        // Контактная почта
	Phone          string `json:"phone,omitempty" validate:"omitempty"`              // Телефон
	EmployeesCount int    `json:"employees_count,omitempty" validate:"omitempty,gte=0"` // Число сотрудников
	Field          string `json:"field,omitempty" validate:"omitempty"`              // Сфера деятельности
	Representation string `json:"representation,omitempty" validate:"omitempty,oneof=EU UK EU_UK"` // Регион
	Logo           string `json:"logo,omitempty" validate:"omitempty"`               // Логотип
}

// PublicCompany публичное представление компании для страницы подачи
// запросов: без владельца, контактов модерации и служебных полей.
type PublicCompany struct {
	UID            string         `json:"uid"`
	Name           string         `json:"name"`
	Field          *string        `json:"field,omitempty"`
	Representation Representation `json:"representation"`
	Logo           *string        `json:"logo,omitempty"`
	Slug           string         `json:"slug"`
	PortalActive   bool           `json:"portal_active"`
}

// Public строит публичное представление компании.
func (c *Company) Public() *PublicCompany {
	var slug string
	if c.Slug != nil {
		slug = *c.Slug
	}
	return &PublicCompany{
		UID:            c.UID,
		Name:           c.Name,
		Field:          c.Field,
		Representation: c.Representation,
		Logo:           c.Logo,
		Slug:           slug,
		PortalActive:   c.PortalActive(),
	}
}
