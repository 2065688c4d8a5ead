package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// Notifier публикует уведомления портала в exchange notifications.
type Notifier struct {
	ch *amqp.Channel
}

// NewNotifier создает новый Notifier поверх открытого канала.
func NewNotifier(ch *amqp.Channel) *Notifier {
	return &Notifier{ch: ch}
}

// NotifyRequestCreated публикует сообщение о новом DSAR-запросе.
func (n *Notifier) NotifyRequestCreated(msg models.RequestNotification) error {
	return PublishMessage(n.ch, NotificationsExchange, RoutingKeyDsarCreated, msg)
}
