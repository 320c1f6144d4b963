// Package whatsapp строит deep-link'и wa.me для переписки с клиентами.
// Сервис не отправляет сообщения сам: ссылка открывает чат с уже
// подставленным текстом, отправка остается за администратором.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/barbearia-jao/agenda-service/pkg/phone"
)

const baseURL = "https://wa.me/"

// Linker генератор ссылок с шаблонами сообщений
type Linker struct {
	chargeTemplate   string
	reminderTemplate string
}

// NewLinker создает генератор ссылок. Шаблоны поддерживают плейсхолдеры
// {nome}, {data} и {horario}.
func NewLinker(chargeTemplate, reminderTemplate string) *Linker {
	return &Linker{
		chargeTemplate:   chargeTemplate,
		reminderTemplate: reminderTemplate,
	}
}

// ChargeLink возвращает ссылку с сообщением о задолженности
func (l *Linker) ChargeLink(rawPhone, clientName string) string {
	text := strings.ReplaceAll(l.chargeTemplate, "{nome}", firstName(clientName))
	return l.build(rawPhone, text)
}

// ReminderLink возвращает ссылку с напоминанием о записи
func (l *Linker) ReminderLink(rawPhone, clientName, date, startTime string) string {
	text := strings.ReplaceAll(l.reminderTemplate, "{nome}", firstName(clientName))
	text = strings.ReplaceAll(text, "{data}", date)
	text = strings.ReplaceAll(text, "{horario}", startTime)
	return l.build(rawPhone, text)
}

func (l *Linker) build(rawPhone, text string) string {
	normalized := phone.Normalize(rawPhone)
	if normalized == "" {
		// Без валидного номера ссылка открывает выбор контакта
		return fmt.Sprintf("%s?text=%s", baseURL, url.QueryEscape(text))
	}
	return fmt.Sprintf("%s%s?text=%s", baseURL, normalized, url.QueryEscape(text))
}

func firstName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full
	}
	return parts[0]
}
