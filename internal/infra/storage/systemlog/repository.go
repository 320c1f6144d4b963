package systemlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/dbtx"
	"github.com/barbearia-jao/agenda-service/pkg/psqlbuilder"
)

// Repository репозиторий журнала системных событий
type Repository struct {
	db dbtx.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала событий
func NewRepository(db dbtx.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает событие в журнал
func (r *Repository) Create(ctx context.Context, entry *domain.SystemLog) error {
	executor := dbtx.GetExecutor(ctx, r.db)

	var details interface{}
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("%w: Create - marshal details: %v", ErrMarshalDetails, err)
		}
		details = raw
	}

	query, args, err := psqlbuilder.Insert("system_logs").
		Columns("type", "origin", "message", "details").
		Values(entry.Type, entry.Origin, entry.Message, details).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// List получает последние события журнала
func (r *Repository) List(ctx context.Context, limit uint64) ([]*domain.SystemLog, error) {
	executor := dbtx.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "type", "origin", "message", "details", "created_at").
		From("system_logs").
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.SystemLog, 0)
	for rows.Next() {
		var entry domain.SystemLog
		var raw sql.NullString

		err := rows.Scan(&entry.ID, &entry.Type, &entry.Origin, &entry.Message, &raw, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		if raw.Valid && raw.String != "" {
			if err := json.Unmarshal([]byte(raw.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("%w: List - unmarshal details: %v", ErrScanRow, err)
			}
		}

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
