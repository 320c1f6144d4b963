package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/barbearia-jao/agenda-service/pkg/dbtx"
)

// Postgres сигнализирует о сбое сериализации этим кодом; такие транзакции
// безопасно повторять.
const pqSerializationFailure = "40001"

const maxSerializableRetries = 3

var (
	// ErrTxBegin возвращается при ошибке открытия транзакции
	ErrTxBegin = errors.New("txmanager: failed to begin transaction")

	// ErrTxCommit возвращается при ошибке коммита
	ErrTxCommit = errors.New("txmanager: failed to commit transaction")
)

// TransactionManager выполняет функции в рамках транзакции БД.
// Транзакция передается вниз по стеку через контекст (pkg/dbtx).
type TransactionManager struct {
	db dbtx.TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db dbtx.TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// Это критическая секция бронирования: проверка пересечений и вставка
// записи происходят атомарно, поэтому две конкурирующие брони на один слот
// не могут пройти обе. Сбои сериализации повторяются до maxSerializableRetries раз.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTxBegin, err)
	}

	if err := fn(dbtx.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrTxCommit, err)
	}
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqSerializationFailure
	}
	return false
}
