package complete_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAlreadyCompleted возвращается при повторном завершении записи
	ErrAlreadyCompleted = errors.New("appointment already completed")

	// ErrCancelled возвращается при попытке завершить отмененную запись
	ErrCancelled = errors.New("appointment is cancelled")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
