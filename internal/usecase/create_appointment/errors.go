package create_appointment

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден в реестре
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrNotADoctor возвращается, когда сотрудник не является врачом
	ErrNotADoctor = errors.New("create_appointment: staff member is not a doctor")

	// ErrPatientNotFound возвращается, когда пациент не найден в реестре
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidTimeRange = errors.New("create_appointment: end time must be after start time")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: appointment date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт записи
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrDoctorOnLeave возвращается, когда время пересекается с утвержденным отпуском врача
	ErrDoctorOnLeave = errors.New("create_appointment: doctor is on leave at this time")

	// ErrOutsideWorkingHours возвращается, когда время вне часов приема врача
	ErrOutsideWorkingHours = errors.New("create_appointment: time is outside doctor's working hours")

	// ErrDoctorBusy возвращается, когда у врача уже есть запись на это время
	ErrDoctorBusy = errors.New("create_appointment: doctor already has an appointment at this time")

	// ErrPatientBusy возвращается, когда у пациента уже есть запись на это время
	ErrPatientBusy = errors.New("create_appointment: patient already has an appointment at this time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
