// Package billing абстрагирует платёжного провайдера подписок.
//
// Провайдер отвечает только за исход оплаты; запись результата в хранилище
// остаётся за сервисом компаний. Реальная интеграция должна приходить сюда
// асинхронным вебхуком; поставляемый MockProvider активирует подписку
// мгновенно и используется в разработке и тестах.
package billing

import (
	"context"
	"time"

	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Outcome результат активации подписки у провайдера.
type Outcome struct {
	Status  models.SubscriptionStatus // Итоговый статус подписки
	EndDate time.Time                 // Дата окончания оплаченного периода
}

// Provider описывает платёжного провайдера подписок.
type Provider interface {
	// Activate проводит оплату подписки компании и возвращает исход.
	Activate(ctx context.Context, companyUID string) (*Outcome, error)
}

// MockProvider мгновенно активирует подписку на 30 дней без реальной оплаты.
type MockProvider struct{}

// NewMockProvider создаёт новый MockProvider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Activate возвращает активную подписку со сроком 30 дней от текущего момента.
func (p *MockProvider) Activate(_ context.Context, _ string) (*Outcome, error) {
	return &Outcome{
		Status:  models.SubscriptionActive,
		EndDate: time.Now().UTC().Add(30 * 24 * time.Hour),
	}, nil
}
