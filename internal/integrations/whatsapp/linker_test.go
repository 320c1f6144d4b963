package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chargeTpl   = "Oi {nome}! Passando para lembrar do pagamento pendente."
	reminderTpl = "Oi {nome}! Lembrete do seu horário em {data} às {horario}."
)

func TestChargeLink(t *testing.T) {
	l := NewLinker(chargeTpl, reminderTpl)

	link := l.ChargeLink("31998765432", "Carlos Silva")

	require.True(t, strings.HasPrefix(link, "https://wa.me/5531998765432?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Equal(t, "Oi Carlos! Passando para lembrar do pagamento pendente.", text)
}

func TestReminderLink(t *testing.T) {
	l := NewLinker(chargeTpl, reminderTpl)

	link := l.ReminderLink("5531998765432", "Carlos Silva", "10/03", "14:30")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Equal(t, "Oi Carlos! Lembrete do seu horário em 10/03 às 14:30.", text)
}

func TestChargeLink_WithoutPhone(t *testing.T) {
	l := NewLinker(chargeTpl, reminderTpl)

	link := l.ChargeLink("", "Carlos Silva")

	// Без номера ссылка открывает выбор контакта
	assert.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Carlos", firstName("Carlos Silva Souza"))
	assert.Equal(t, "Carlos", firstName("Carlos"))
	assert.Equal(t, "", firstName(""))
}
