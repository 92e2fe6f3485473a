package get_available_dates

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден или истёк
	ErrVisitNotFound = errors.New("get_available_dates: visit not found")

	// ErrInvalidRange возвращается, когда конец диапазона раньше начала или диапазон слишком длинный
	ErrInvalidRange = errors.New("get_available_dates: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
