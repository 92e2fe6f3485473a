package create_appointment

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден или истёк
	ErrVisitNotFound = errors.New("create_appointment: visit not found")

	// ErrDateInPast возвращается для даты раньше сегодняшней
	ErrDateInPast = errors.New("create_appointment: date is in the past")

	// ErrDayBlackedOut возвращается для пятницы и субботы
	ErrDayBlackedOut = errors.New("create_appointment: no appointments on this weekday")

	// ErrDayFull возвращается, когда на дату уже максимум записей
	ErrDayFull = errors.New("create_appointment: day is fully booked")

	// ErrInvalidTimeSlot возвращается, когда время не входит в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotTaken возвращается, когда выбранный слот уже занят
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
