package model

// SlotSelection выбранный в сетке интервал до создания бронирования.
// Живёт только в сессии сотрудника и никогда не сохраняется в БД.
type SlotSelection struct {
	ID              string `json:"id"`
	InstructorID    string `json:"instructor_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}
