package get_available_slots

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден или истёк
	ErrVisitNotFound = errors.New("get_available_slots: visit not found")

	// ErrDateInPast возвращается для даты раньше сегодняшней
	ErrDateInPast = errors.New("get_available_slots: date is in the past")

	// ErrDayBlackedOut возвращается для пятницы и субботы
	ErrDayBlackedOut = errors.New("get_available_slots: no appointments on this weekday")

	// ErrDayFull возвращается, когда на дату уже максимум записей
	ErrDayFull = errors.New("get_available_slots: day is fully booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
