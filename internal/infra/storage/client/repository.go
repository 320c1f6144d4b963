package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/dbtx"
	"github.com/barbearia-jao/agenda-service/pkg/psqlbuilder"
)

var clientColumns = []string{
	"id",
	"name",
	"phone",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db dbtx.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbtx.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("name", "phone", "notes").
		Values(c.Name, c.Phone, c.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan client: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetByPhone ищет клиента по каноническому номеру телефона
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Client, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"phone": phone}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan client: %v", ErrScanRow, err)
	}

	return c, nil
}

// List получает всех клиентов, отсортированных по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Client, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return clients, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
