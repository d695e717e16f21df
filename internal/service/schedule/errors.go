package schedule

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в реестре
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrNotADoctor возвращается, когда сотрудник не является врачом
	ErrNotADoctor = errors.New("staff member is not a doctor")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidDay возвращается при некорректном дне недели
	ErrInvalidDay = errors.New("day of week must be between 0 (Monday) and 6 (Sunday)")

	// ErrInvalidWindow возвращается, когда время окончания окна не позже времени начала
	ErrInvalidWindow = errors.New("window end time must be after start time")

	// ErrOverlappingWindows возвращается при пересечении окон одного дня
	ErrOverlappingWindows = errors.New("working windows overlap")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
