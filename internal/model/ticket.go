package model

import "time"

// Ticket заказ на частные занятия, собранный из выбранных слотов
type Ticket struct {
	ID            string       `json:"id"`
	InstructorID  string       `json:"instructor_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerPhone string       `json:"customer_phone"`
	Notes         string       `json:"notes"`
	TotalMinutes  int          `json:"total_minutes"`
	CreatedAt     time.Time    `json:"created_at"`
	Items         []TicketItem `json:"items,omitempty"`
}

// TicketItem одно занятие внутри заказа (строка в bookings)
type TicketItem struct {
	BookingID       string `json:"booking_id"`
	Date            string `json:"date"`
	TimeStart       string `json:"time_start"`
	TimeEnd         string `json:"time_end"`
	DurationMinutes int    `json:"duration_minutes"`
}
