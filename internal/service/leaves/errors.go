package leaves

import "errors"

var (
	// ErrLeaveNotFound возвращается, когда заявка не найдена
	ErrLeaveNotFound = errors.New("leave request not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNotPending возвращается при попытке изменить уже рассмотренную заявку
	ErrNotPending = errors.New("leave request is not pending")

	// ErrInvalidDateRange возвращается, когда дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidTimeRange возвращается, когда время окончания не позже времени начала
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrDateInPast возвращается, когда отпуск начинается в прошлом
	ErrDateInPast = errors.New("leave cannot start in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
