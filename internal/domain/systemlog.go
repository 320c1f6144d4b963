package domain

import "time"

// System log event types
const (
	LogDelinquentCreated = "INADIMPLENTE_CRIADO"
	LogDelinquentSettled = "INADIMPLENTE_QUITADO"
	LogAppointmentSwept  = "AGENDAMENTO_AUTOCONCLUIDO"
)

// SystemLog is an audit trail entry.
type SystemLog struct {
	ID        int64
	Type      string
	Origin    string // "sistema" / "admin"
	Message   string
	Details   map[string]interface{} // stored as JSONB
	CreatedAt time.Time
}
