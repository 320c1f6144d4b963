package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/dbtx"
	"github.com/barbearia-jao/agenda-service/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"category",
	"base_price",
	"duration_minutes",
	"active",
	"created_at",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db dbtx.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога услуг
func NewRepository(db dbtx.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает услуги каталога. При activeOnly возвращает только активные.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Service, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("category ASC, name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
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

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Category,
			&s.BasePrice,
			&s.DurationMinutes,
			&s.Active,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Category,
		&s.BasePrice,
		&s.DurationMinutes,
		&s.Active,
		&s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return &s, nil
}
