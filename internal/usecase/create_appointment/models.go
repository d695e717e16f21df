package create_appointment

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CreatedBy   int64                  // ID пользователя, создающего запись
	PatientID   int64                  // ID пациента
	DoctorID    int64                  // ID врача
	Date        time.Time              // Дата приема (без времени)
	StartTime   types.TimeString       // Время начала
	EndTime     types.TimeString       // Время окончания
	Type        domain.AppointmentType // Тип приема, пустой = REGULAR
	IsEmergency bool                   // Экстренная запись
	Reason      *string                // Причина обращения (опционально)
	Notes       *string                // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Type        string
	Status      string
	IsEmergency bool
	Reason      *string
	Notes       *string
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Settings стандартные часы приема и горизонт записи
type Settings struct {
	StandardOpenTime   types.TimeString
	StandardCloseTime  types.TimeString
	AdvanceBookingDays int            // 0 = без ограничений
	Location           *time.Location // Часовой пояс больницы, nil = UTC
}
