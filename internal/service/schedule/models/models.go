package models

import (
	"sort"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// Request модели

// WindowRequest окно приема в пределах дня
type WindowRequest struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ReplaceDayRequest запрос на замену расписания врача на день недели
// Пустой список окон делает день нерабочим
type ReplaceDayRequest struct {
	Actor     domain.Actor
	DoctorID  int64
	DayOfWeek domain.DayOfWeek
	Windows   []WindowRequest
}

// Response модели

// WindowResponse окно приема
type WindowResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// DayScheduleResponse расписание на день недели
type DayScheduleResponse struct {
	DayOfWeek int              `json:"dayOfWeek"`
	DayName   string           `json:"dayName"`
	Windows   []WindowResponse `json:"windows"`
}

// ScheduleResponse недельное расписание врача
type ScheduleResponse struct {
	DoctorID int64                 `json:"doctorId"`
	Days     []DayScheduleResponse `json:"days"`
}

// Методы конвертации

// FromDomainSchedule группирует окна по дням недели, дни и окна по возрастанию
func FromDomainSchedule(doctorID int64, windows []*domain.DoctorAvailability) *ScheduleResponse {
	byDay := make(map[domain.DayOfWeek][]*domain.DoctorAvailability)
	for _, w := range windows {
		byDay[w.DayOfWeek] = append(byDay[w.DayOfWeek], w)
	}

	days := make([]domain.DayOfWeek, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	resp := &ScheduleResponse{
		DoctorID: doctorID,
		Days:     make([]DayScheduleResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, FromDomainDay(d, byDay[d]))
	}

	return resp
}

// FromDomainDay конвертирует окна одного дня
func FromDomainDay(day domain.DayOfWeek, windows []*domain.DoctorAvailability) DayScheduleResponse {
	sorted := make([]*domain.DoctorAvailability, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime.IsBefore(sorted[j].StartTime) })

	resp := DayScheduleResponse{
		DayOfWeek: int(day),
		DayName:   day.String(),
		Windows:   make([]WindowResponse, 0, len(sorted)),
	}
	for _, w := range sorted {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:        w.ID,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
		})
	}

	return resp
}
