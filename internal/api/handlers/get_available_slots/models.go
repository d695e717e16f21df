package get_available_slots

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "09:30"
	DurationMinutes int    `json:"durationMinutes"`
	Label           string `json:"label"` // "09:00 - 09:30"
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	DoctorID    int64          `json:"doctorId"`
	Date        string         `json:"date"`
	IsEmergency bool           `json:"isEmergency"`
	Slots       []SlotResponse `json:"slots"`
	Message     string         `json:"message,omitempty"`
	Warning     string         `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(doctorID int64, dateStr string, emergency bool) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		DoctorID:    doctorID,
		Date:        date,
		IsEmergency: emergency,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for i := range resp.Slots {
		slot := resp.Slots[i]
		slots = append(slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes(),
			Label:           slot.Label,
		})
	}

	return &AvailableSlotsResponse{
		DoctorID:    resp.DoctorID,
		Date:        resp.Date.Format(domain.DateFormat),
		IsEmergency: resp.IsEmergency,
		Slots:       slots,
		Message:     resp.Message,
		Warning:     resp.Warning,
	}
}
