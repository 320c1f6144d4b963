package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается, когда время окончания не позже начала
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrDayClosed возвращается при переносе записи на выходной день
	ErrDayClosed = errors.New("barbershop is closed on this day")

	// ErrSlotConflict возвращается, когда новый слот пересекается с другой записью
	ErrSlotConflict = errors.New("slot conflicts with another appointment")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("internal error")
)
