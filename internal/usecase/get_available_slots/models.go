package get_available_slots

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

const (
	MessageEmergency = "Emergency appointments are available 24/7"
	MessageNoSlots   = "No time slots available for the selected date and doctor."
	WarningOnLeave   = "Doctor is on partial leave for this day. Some time slots may not be available."
)

// Request модель запроса на получение доступных слотов
type Request struct {
	DoctorID    int64     // ID врача
	Date        time.Time // Дата (без времени)
	IsEmergency bool      // Экстренная запись: круглосуточно, без учета отпуска
}

// Response модель ответа со списком доступных слотов
type Response struct {
	DoctorID    int64
	Date        time.Time
	IsEmergency bool
	Slots       []domain.AvailableSlot
	Message     string // Информационное сообщение (может быть пустым)
	Warning     string // Предупреждение об отпуске врача (может быть пустым)
}

// Settings стандартные часы приема больницы
// Используются, когда у врача нет недельного расписания
type Settings struct {
	StandardOpenTime   types.TimeString
	StandardCloseTime  types.TimeString
	SlotGranularity    time.Duration
	AdvanceBookingDays int            // 0 = без ограничений
	Location           *time.Location // Часовой пояс больницы, nil = UTC
}
