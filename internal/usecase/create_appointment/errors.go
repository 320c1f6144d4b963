package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrInvalidTimeRange возвращается, когда время окончания не позже начала
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrDayClosed возвращается при попытке записи на выходной день
	ErrDayClosed = errors.New("barbershop is closed on this day")

	// ErrSlotConflict возвращается, когда слот пересекается с другой записью
	ErrSlotConflict = errors.New("slot conflicts with another appointment")

	// ErrServiceNotFound возвращается, когда услуга каталога не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidPaymentMethod возвращается при неизвестном способе оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
