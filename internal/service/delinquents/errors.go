package delinquents

import "errors"

var (
	// ErrDelinquentNotFound возвращается, когда запись о долге не найдена
	ErrDelinquentNotFound = errors.New("delinquent not found")

	// ErrAlreadySettled возвращается при попытке оплатить погашенный долг
	ErrAlreadySettled = errors.New("delinquent already settled")

	// ErrInvalidAmount возвращается, когда сумма оплаты некорректна
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
