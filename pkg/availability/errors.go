package availability

import "errors"

var (
	// ErrInvalidWindow возвращается, когда open_time >= close_time или шаг слотов не положительный
	ErrInvalidWindow = errors.New("availability: invalid work window")

	// ErrInvalidInterval возвращается, когда у занятого или заблокированного интервала start >= end
	ErrInvalidInterval = errors.New("availability: invalid interval")
)
