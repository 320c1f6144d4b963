package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/dbtx"
	"github.com/barbearia-jao/agenda-service/pkg/psqlbuilder"
)

// Repository репозиторий истории платежей
type Repository struct {
	db dbtx.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbtx.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create фиксирует платеж в истории
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("appointment_id", "client_id", "amount", "method", "status", "paid_at").
		Values(p.AppointmentID, p.ClientID, p.Amount, p.Method, p.Status, p.PaidAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// ListByPeriod получает платежи за период [from, to)
func (r *Repository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Payment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "appointment_id", "client_id", "amount", "method", "status", "paid_at").
		From("payments").
		Where(squirrel.GtOrEq{"paid_at": from}).
		Where(squirrel.Lt{"paid_at": to}).
		OrderBy("paid_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(&p.ID, &p.AppointmentID, &p.ClientID, &p.Amount, &p.Method, &p.Status, &p.PaidAt)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByPeriod - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPeriod - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
