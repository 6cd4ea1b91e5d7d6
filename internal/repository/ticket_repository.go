package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository/base"
)

type TicketRepository struct {
	*base.Repository
}

func NewTicketRepository(db base.DBTX) *TicketRepository {
	return &TicketRepository{Repository: base.NewRepository(db)}
}

// Create создаёт заказ без позиций
func (r *TicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	query := `
		INSERT INTO tickets (instructor_id, customer_name, customer_phone, notes, total_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.DB().QueryRow(
		ctx, query,
		ticket.InstructorID,
		ticket.CustomerName,
		ticket.CustomerPhone,
		ticket.Notes,
		ticket.TotalMinutes,
	).Scan(&ticket.ID, &ticket.CreatedAt)

	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}

	return nil
}
