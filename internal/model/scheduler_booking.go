package model

// DateLayout формат календарного дня, которым обмениваются все слои
const DateLayout = "2006-01-02"

type BookingType string

const (
	BookingTypePrivate BookingType = "private"
	BookingTypeGroup   BookingType = "group"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// SchedulerBooking уже сохранённое занятие инструктора на конкретный день.
// Движок выбора слотов только читает эти записи.
type SchedulerBooking struct {
	ID           string        `json:"id"`
	InstructorID string        `json:"instructor_id"`
	Date         string        `json:"date"`       // YYYY-MM-DD
	TimeStart    string        `json:"time_start"` // HH:MM
	TimeEnd      string        `json:"time_end"`   // HH:MM
	Type         BookingType   `json:"type"`
	IsPaid       bool          `json:"is_paid"`
	TicketID     *string       `json:"ticket_id"`
	Status       BookingStatus `json:"status"`
}
