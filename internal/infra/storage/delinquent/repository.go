package delinquent

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/dbtx"
	"github.com/barbearia-jao/agenda-service/pkg/psqlbuilder"
)

// delinquentColumns столбцы выборки; service_date подтягивается из связанного
// агендамента и служит базой для расчета просрочки
var delinquentColumns = []string{
	"d.id",
	"d.appointment_id",
	"d.client_id",
	"d.client_name",
	"d.phone",
	"d.service_name",
	"d.amount_owed",
	"d.amount_paid",
	"d.amount_remaining",
	"d.due_date",
	"d.days_overdue",
	"d.status",
	"d.contact_attempts",
	"d.last_contact_at",
	"d.notes",
	"a.date AS service_date",
	"d.created_at",
	"d.updated_at",
}

// Repository репозиторий записей о неплательщиках
type Repository struct {
	db dbtx.DBExecutor
}

// NewRepository создает новый экземпляр репозитория неплательщиков
func NewRepository(db dbtx.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись о долге
func (r *Repository) Create(ctx context.Context, d *domain.Delinquent) (*domain.Delinquent, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("delinquents").
		Columns(
			"appointment_id",
			"client_id",
			"client_name",
			"phone",
			"service_name",
			"amount_owed",
			"amount_paid",
			"amount_remaining",
			"due_date",
			"days_overdue",
			"status",
			"notes",
		).
		Values(
			d.AppointmentID,
			d.ClientID,
			d.ClientName,
			d.Phone,
			d.ServiceName,
			d.AmountOwed,
			d.AmountPaid,
			d.AmountRemaining,
			d.DueDate,
			d.DaysOverdue,
			d.Status,
			d.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return d, nil
}

// GetByID получает запись о долге по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Delinquent, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := baseSelect().
		Where(squirrel.Eq{"d.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDelinquent(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDelinquentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan delinquent: %v", ErrScanRow, err)
	}

	return d, nil
}

// List получает записи о долгах, опционально фильтруя по статусу.
// Непогашенные идут первыми, внутри группы свежие долги сверху.
func (r *Repository) List(ctx context.Context, status *domain.DelinquencyStatus) ([]*domain.Delinquent, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().
		OrderBy("d.status ASC, d.created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	delinquents := make([]*domain.Delinquent, 0)
	for rows.Next() {
		d, err := scanDelinquent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		delinquents = append(delinquents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return delinquents, nil
}

// GetByAppointmentID ищет запись о долге, привязанную к агендаменту
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Delinquent, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := baseSelect().
		Where(squirrel.Eq{"d.appointment_id": appointmentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDelinquent(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDelinquentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan delinquent: %v", ErrScanRow, err)
	}

	return d, nil
}

// Settle регистрирует оплату долга: увеличивает amount_paid, пересчитывает
// остаток и закрывает запись при полном погашении.
func (r *Repository) Settle(ctx context.Context, id int64, amountPaid, amountRemaining float64, status domain.DelinquencyStatus) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("delinquents").
		Set("amount_paid", amountPaid).
		Set("amount_remaining", amountRemaining).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Settle - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Settle - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Settle")
}

// RegisterContact фиксирует попытку связаться с должником
func (r *Repository) RegisterContact(ctx context.Context, id int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("delinquents").
		Set("contact_attempts", squirrel.Expr("contact_attempts + 1")).
		Set("last_contact_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RegisterContact - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RegisterContact - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "RegisterContact")
}

// UpdateDaysOverdue сохраняет пересчитанную просрочку
func (r *Repository) UpdateDaysOverdue(ctx context.Context, id int64, days int) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("delinquents").
		Set("days_overdue", days).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDaysOverdue - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateDaysOverdue - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(delinquentColumns...).
		From("delinquents d").
		LeftJoin("appointments a ON a.id = d.appointment_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDelinquent(row rowScanner) (*domain.Delinquent, error) {
	var d domain.Delinquent
	var dueDate, lastContactAt, serviceDate sql.NullTime

	err := row.Scan(
		&d.ID,
		&d.AppointmentID,
		&d.ClientID,
		&d.ClientName,
		&d.Phone,
		&d.ServiceName,
		&d.AmountOwed,
		&d.AmountPaid,
		&d.AmountRemaining,
		&dueDate,
		&d.DaysOverdue,
		&d.Status,
		&d.ContactAttempts,
		&lastContactAt,
		&d.Notes,
		&serviceDate,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d.DueDate = &dueDate.Time
	}
	if lastContactAt.Valid {
		d.LastContactAt = &lastContactAt.Time
	}
	if serviceDate.Valid {
		d.ServiceDate = &serviceDate.Time
	}

	return &d, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrDelinquentNotFound
	}
	return nil
}
