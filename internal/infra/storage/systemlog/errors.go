package systemlog

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("systemlog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("systemlog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("systemlog.repository: failed to scan row")

	// ErrMarshalDetails возвращается при ошибке сериализации деталей события
	ErrMarshalDetails = errors.New("systemlog.repository: failed to marshal details")
)
