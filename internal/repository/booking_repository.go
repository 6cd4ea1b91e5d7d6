package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository/base"
	"github.com/Masterminds/squirrel"
)

// BookingFilter параметры выборки занятий для сетки
type BookingFilter struct {
	From         string // YYYY-MM-DD, включительно
	To           string // YYYY-MM-DD, включительно
	InstructorID string // пусто - все инструкторы
}

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(db base.DBTX) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(db)}
}

// ListForRange получает неотменённые занятия за диапазон дат
func (r *BookingRepository) ListForRange(ctx context.Context, filter BookingFilter) ([]model.SchedulerBooking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Select(
		"id", "instructor_id",
		"to_char(date, 'YYYY-MM-DD')",
		"to_char(time_start, 'HH24:MI')",
		"to_char(time_end, 'HH24:MI')",
		"type", "is_paid", "ticket_id", "status",
	).
		From("bookings").
		Where(squirrel.NotEq{"status": model.BookingStatusCanceled}).
		Where(squirrel.Expr("date >= ?::date", filter.From)).
		Where(squirrel.Expr("date <= ?::date", filter.To))

	if filter.InstructorID != "" {
		q = q.Where(squirrel.Eq{"instructor_id": filter.InstructorID})
	}

	query, args, err := q.OrderBy("date", "time_start").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query: %w", err)
	}

	rows, err := r.DB().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.SchedulerBooking
	for rows.Next() {
		var b model.SchedulerBooking
		err := rows.Scan(
			&b.ID,
			&b.InstructorID,
			&b.Date,
			&b.TimeStart,
			&b.TimeEnd,
			&b.Type,
			&b.IsPaid,
			&b.TicketID,
			&b.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// LockInstructorDay берёт advisory-блокировку на день инструктора до конца транзакции.
// Вызывать только внутри транзакции.
func (r *BookingRepository) LockInstructorDay(ctx context.Context, instructorID, date string) error {
	query := `SELECT pg_advisory_xact_lock(hashtext($1::text || '/' || $2::text))`

	if _, err := r.DB().Exec(ctx, query, instructorID, date); err != nil {
		return fmt.Errorf("lock instructor day: %w", err)
	}
	return nil
}

// HasOverlap проверяет, пересекает ли [start, end) неотменённое занятие инструктора
func (r *BookingRepository) HasOverlap(ctx context.Context, instructorID, date, start, end string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE instructor_id = $1
			  AND date = $2::date
			  AND status <> 'canceled'
			  AND time_start < $4::time
			  AND time_end > $3::time
		)
	`

	var exists bool
	err := r.DB().QueryRow(ctx, query, instructorID, date, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check booking overlap: %w", err)
	}

	return exists, nil
}

// CreatePrivate создаёт частное занятие внутри заказа
func (r *BookingRepository) CreatePrivate(ctx context.Context, ticketID, instructorID string, item *model.TicketItem) error {
	query := `
		INSERT INTO bookings (instructor_id, date, time_start, time_end, type, is_paid, ticket_id, status)
		VALUES ($1, $2::date, $3::time, $4::time, $5, FALSE, $6, $7)
		RETURNING id
	`

	err := r.DB().QueryRow(
		ctx, query,
		instructorID,
		item.Date,
		item.TimeStart,
		item.TimeEnd,
		model.BookingTypePrivate,
		ticketID,
		model.BookingStatusConfirmed,
	).Scan(&item.BookingID)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}
