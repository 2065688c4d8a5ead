// Package smtp предоставляет транспорт исходящей почты для
// уведомлений о DSAR-запросах.
package smtp

import "io"

// Client интерфейс SMTP-клиента, абстрагирует net/smtp для тестов.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface интерфейс для SMTP транспорта.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
