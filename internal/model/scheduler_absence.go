package model

type AbsenceStatus string

const (
	AbsenceStatusPending   AbsenceStatus = "pending"
	AbsenceStatusConfirmed AbsenceStatus = "confirmed"
	AbsenceStatusRejected  AbsenceStatus = "rejected"
)

// SchedulerAbsence период отсутствия инструктора.
// StartDate и EndDate включительно, формат YYYY-MM-DD.
type SchedulerAbsence struct {
	ID           string        `json:"id"`
	InstructorID string        `json:"instructor_id"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Type         string        `json:"type"` // vacation, sick, other
	Status       AbsenceStatus `json:"status"`
}
