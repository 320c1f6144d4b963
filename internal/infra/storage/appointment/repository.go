package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/dbtx"
	"github.com/barbearia-jao/agenda-service/pkg/psqlbuilder"
)

// appointmentColumns столбцы таблицы appointments в порядке сканирования
var appointmentColumns = []string{
	"id",
	"date",
	"start_time",
	"end_time",
	"status",
	"client_id",
	"client_name",
	"phone",
	"service_id",
	"service_name",
	"price",
	"payment_status",
	"payment_method",
	"paid_amount",
	"net_value",
	"applied_fee",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями
type Repository struct {
	db dbtx.DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db dbtx.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Внутри бронирующей транзакции использует её через контекст: проверка
// пересечений и вставка тогда выполняются атомарно.
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"date",
			"start_time",
			"end_time",
			"status",
			"client_id",
			"client_name",
			"phone",
			"service_id",
			"service_name",
			"price",
			"payment_status",
			"payment_method",
			"paid_amount",
			"net_value",
			"applied_fee",
			"notes",
		).
		Values(
			apt.Date,
			apt.StartTime,
			apt.EndTime,
			apt.Status,
			apt.ClientID,
			apt.ClientName,
			apt.Phone,
			apt.ServiceID,
			apt.ServiceName,
			apt.Price,
			apt.PaymentStatus,
			apt.PaymentMethod,
			apt.PaidAmount,
			apt.NetValue,
			apt.AppliedFee,
			apt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&apt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return apt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	apt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return apt, nil
}

// ListWithFilter получает записи с фильтрацией по дате/периоду/статусу.
//
// Для конкретной даты результат сортируется по времени начала; внутри
// транзакции к такой выборке добавляется FOR UPDATE - это блокировка дня
// для критической секции бронирования.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": *filter.Date})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ExcludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC, start_time DESC")
	}

	if dbtx.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListExpired получает кандидатов на автозавершение: записи со статусом
// agendado/confirmado на сегодняшнюю или прошедшую дату. Сравнение времени
// окончания с now делает вызывающая сторона.
func (r *Repository) ListExpired(ctx context.Context, now time.Time) ([]*domain.Appointment, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusScheduled),
			string(domain.StatusConfirmed),
		}}).
		Where(squirrel.LtOrEq{"date": today}).
		OrderBy("date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update обновляет редактируемые поля записи
func (r *Repository) Update(ctx context.Context, apt *domain.Appointment) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("date", apt.Date).
		Set("start_time", apt.StartTime).
		Set("end_time", apt.EndTime).
		Set("status", apt.Status).
		Set("client_id", apt.ClientID).
		Set("client_name", apt.ClientName).
		Set("phone", apt.Phone).
		Set("service_id", apt.ServiceID).
		Set("service_name", apt.ServiceName).
		Set("price", apt.Price).
		Set("notes", apt.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": apt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// SetPayment фиксирует оплату записи (или её отсутствие при nao_pago)
func (r *Repository) SetPayment(
	ctx context.Context,
	id int64,
	paymentStatus domain.PaymentStatus,
	method domain.PaymentMethod,
	paidAmount, netValue, appliedFee float64,
) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("payment_status", paymentStatus).
		Set("payment_method", method).
		Set("paid_amount", paidAmount).
		Set("net_value", netValue).
		Set("applied_fee", appliedFee).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPayment - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetPayment")
}

// Delete удаляет запись (физическое удаление по явному действию пользователя)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var apt domain.Appointment
	var endTime sql.NullString
	var method sql.NullString
	var netValue, appliedFee sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&apt.ID,
		&apt.Date,
		&apt.StartTime,
		&endTime,
		&apt.Status,
		&apt.ClientID,
		&apt.ClientName,
		&apt.Phone,
		&apt.ServiceID,
		&apt.ServiceName,
		&apt.Price,
		&apt.PaymentStatus,
		&method,
		&apt.PaidAmount,
		&netValue,
		&appliedFee,
		&apt.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		if err := apt.EndTime.Scan(endTime.String); err != nil {
			return nil, err
		}
	}
	if method.Valid {
		m := domain.PaymentMethod(method.String)
		apt.PaymentMethod = &m
	}
	if netValue.Valid {
		apt.NetValue = &netValue.Float64
	}
	if appliedFee.Valid {
		apt.AppliedFee = &appliedFee.Float64
	}
	apt.CreatedAt = createdAt.Time
	apt.UpdatedAt = updatedAt.Time

	return &apt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
