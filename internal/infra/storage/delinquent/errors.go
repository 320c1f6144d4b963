package delinquent

import "errors"

var (
	// ErrDelinquentNotFound возвращается, когда запись о долге не найдена
	ErrDelinquentNotFound = errors.New("delinquent.repository: delinquent not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("delinquent.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("delinquent.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("delinquent.repository: failed to scan row")
)
