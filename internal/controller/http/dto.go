package http

import (
	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/service"
)

type sessionURI struct {
	SessionID string `uri:"session" binding:"required,max=64"`
}

type slotURI struct {
	SessionID string `uri:"session" binding:"required,max=64"`
	SlotID    string `uri:"slot" binding:"required"`
}

// DayQuery параметры GET /scheduler/day
type DayQuery struct {
	Date string `form:"date" binding:"required,isodate"`
}

// SlotAtQuery ячейка сетки для поиска выбранного слота
type SlotAtQuery struct {
	InstructorID string `form:"instructor_id" binding:"required,uuid"`
	Date         string `form:"date" binding:"required,isodate"`
	Time         string `form:"time" binding:"required,clock"`
}

// SlotBody интервал, выделенный перетаскиванием
type SlotBody struct {
	InstructorID string `json:"instructor_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required,isodate"`
	StartTime    string `json:"start_time" binding:"required,clock"`
	EndTime      string `json:"end_time" binding:"required,clock"`
}

func (b SlotBody) toRequest() service.SlotRequest {
	return service.SlotRequest{
		InstructorID: b.InstructorID,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
	}
}

type ResizeBody struct {
	EndTime string `json:"end_time" binding:"required,clock"`
}

type ResizingBody struct {
	IsResizing bool   `json:"is_resizing"`
	SlotID     string `json:"slot_id"`
}

// BookingBody данные клиента для создания заказа из сессии
type BookingBody struct {
	CustomerName  string `json:"customer_name" binding:"required,max=200"`
	CustomerPhone string `json:"customer_phone" binding:"omitempty,max=50"`
	Notes         string `json:"notes" binding:"omitempty,max=2000"`
}

type InstructorResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

type DayResponse struct {
	Date        string                   `json:"date"`
	Instructors []InstructorResponse     `json:"instructors"`
	Bookings    []model.SchedulerBooking `json:"bookings"`
	Absences    []model.SchedulerAbsence `json:"absences"`
}

func NewDayResponse(s *service.DaySnapshot) DayResponse {
	resp := DayResponse{
		Date:        s.Date,
		Instructors: make([]InstructorResponse, 0, len(s.Instructors)),
		Bookings:    s.Bookings,
		Absences:    s.Absences,
	}
	for _, i := range s.Instructors {
		resp.Instructors = append(resp.Instructors, InstructorResponse{ID: i.ID, FullName: i.FullName()})
	}
	if resp.Bookings == nil {
		resp.Bookings = []model.SchedulerBooking{}
	}
	if resp.Absences == nil {
		resp.Absences = []model.SchedulerAbsence{}
	}
	return resp
}

type SessionResponse struct {
	TeacherID      *string               `json:"teacher_id"`
	Selections     []model.SlotSelection `json:"selections"`
	IsResizing     bool                  `json:"is_resizing"`
	ActiveResizeID *string               `json:"active_resize_id"`
	TotalHours     float64               `json:"total_hours"`
}

func NewSessionResponse(v service.SessionView) SessionResponse {
	resp := SessionResponse{
		Selections: v.Selections,
		IsResizing: v.IsResizing,
		TotalHours: v.TotalHours,
	}
	if v.TeacherID != "" {
		resp.TeacherID = &v.TeacherID
	}
	if v.ActiveResizeID != "" {
		resp.ActiveResizeID = &v.ActiveResizeID
	}
	if resp.Selections == nil {
		resp.Selections = []model.SlotSelection{}
	}
	return resp
}

// ValidationResponse ответ проверки слота
type ValidationResponse struct {
	Valid  bool                 `json:"valid"`
	Reason string               `json:"reason,omitempty"`
	Slot   *model.SlotSelection `json:"slot,omitempty"`
}

func NewValidationResponse(r service.StageResult) ValidationResponse {
	resp := ValidationResponse{Valid: r.Result.Valid, Reason: r.Result.Reason}
	if r.Result.Valid {
		slot := r.Slot
		resp.Slot = &slot
	}
	return resp
}
