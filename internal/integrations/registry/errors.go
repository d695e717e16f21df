package registry

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден в реестре
	ErrStaffNotFound = errors.New("registry client: staff member not found")

	// ErrPatientNotFound возвращается, когда пациент не найден в реестре
	ErrPatientNotFound = errors.New("registry client: patient not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("registry client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от реестра
	ErrInvalidResponse = errors.New("registry client: invalid response")
)
