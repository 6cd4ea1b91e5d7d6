package repository

import (
	"context"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingWriter операции, выполняемые в одной транзакции при создании заказа
type BookingWriter interface {
	LockInstructorDay(ctx context.Context, instructorID, date string) error
	HasOverlap(ctx context.Context, instructorID, date, start, end string) (bool, error)
	CreateTicket(ctx context.Context, ticket *model.Ticket) error
	CreatePrivateBooking(ctx context.Context, ticketID, instructorID string, item *model.TicketItem) error
}

// TxManager запускает транзакции поверх пула
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// InBookingTx выполняет fn с репозиториями, привязанными к одной транзакции
func (m *TxManager) InBookingTx(ctx context.Context, fn func(w BookingWriter) error) error {
	return base.WithTx(ctx, m.pool, func(tx pgx.Tx) error {
		return fn(&bookingTx{
			bookings: NewBookingRepository(tx),
			tickets:  NewTicketRepository(tx),
		})
	})
}

type bookingTx struct {
	bookings *BookingRepository
	tickets  *TicketRepository
}

func (t *bookingTx) LockInstructorDay(ctx context.Context, instructorID, date string) error {
	return t.bookings.LockInstructorDay(ctx, instructorID, date)
}

func (t *bookingTx) HasOverlap(ctx context.Context, instructorID, date, start, end string) (bool, error) {
	return t.bookings.HasOverlap(ctx, instructorID, date, start, end)
}

func (t *bookingTx) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	return t.tickets.Create(ctx, ticket)
}

func (t *bookingTx) CreatePrivateBooking(ctx context.Context, ticketID, instructorID string, item *model.TicketItem) error {
	return t.bookings.CreatePrivate(ctx, ticketID, instructorID, item)
}
