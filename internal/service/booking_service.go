package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/skischool_office/internal/controller/state"
	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository"
	"github.com/Freeeeeet/skischool_office/internal/repository/base"
	"github.com/Freeeeeet/skischool_office/internal/scheduler"
	"go.uber.org/zap"
)

// BookingTxRunner выполняет операции записи заказа в одной транзакции
type BookingTxRunner interface {
	InBookingTx(ctx context.Context, fn func(w repository.BookingWriter) error) error
}

// Notifier сообщает инструктору о новом заказе
type Notifier interface {
	BookingCreated(ctx context.Context, instructor *model.Instructor, ticket *model.Ticket) error
}

// Customer данные клиента, вводимые в офисе
type Customer struct {
	Name  string
	Phone string
	Notes string
}

type BookingService struct {
	txRunner       BookingTxRunner
	instructorRepo InstructorReader
	store          state.Store
	notifier       Notifier
	logger         *zap.Logger
}

func NewBookingService(
	txRunner BookingTxRunner,
	instructorRepo InstructorReader,
	store state.Store,
	notifier Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		txRunner:       txRunner,
		instructorRepo: instructorRepo,
		store:          store,
		notifier:       notifier,
		logger:         logger,
	}
}

// CreateFromSession превращает выбранные слоты сессии в заказ с частными занятиями.
// Пересечения перепроверяются под advisory-блокировкой дня инструктора.
func (s *BookingService) CreateFromSession(ctx context.Context, sessionID string, customer Customer) (*model.Ticket, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return nil, ErrCustomerRequired
	}

	var (
		instructorID string
		slots        []model.SlotSelection
	)
	err := s.store.View(ctx, sessionID, func(sel *scheduler.Selection) {
		instructorID, _ = sel.TeacherID()
		slots = sel.Selections()
	})
	if err != nil {
		return nil, fmt.Errorf("view session: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrSessionEmpty
	}

	instructor, err := s.instructorRepo.GetByID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("get instructor: %w", err)
	}
	if instructor == nil || !instructor.IsActive {
		return nil, ErrInstructorNotFound
	}

	ticket := buildTicket(instructorID, customer, slots)

	err = s.txRunner.InBookingTx(ctx, func(w repository.BookingWriter) error {
		// Позиции отсортированы, блокировки берутся в порядке дат
		locked := make(map[string]bool)
		for _, item := range ticket.Items {
			if locked[item.Date] {
				continue
			}
			if err := w.LockInstructorDay(ctx, instructorID, item.Date); err != nil {
				return err
			}
			locked[item.Date] = true
		}

		for _, item := range ticket.Items {
			taken, err := w.HasOverlap(ctx, instructorID, item.Date, item.TimeStart, item.TimeEnd)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlotTaken
			}
		}

		if err := w.CreateTicket(ctx, ticket); err != nil {
			return err
		}

		for i := range ticket.Items {
			if err := w.CreatePrivateBooking(ctx, ticket.ID, instructorID, &ticket.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if base.IsExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		if base.IsForeignKeyViolation(err) {
			return nil, ErrInstructorNotFound
		}
		return nil, err
	}

	s.logger.Info("Ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("session_id", sessionID),
		zap.String("instructor_id", instructorID),
		zap.Int("items", len(ticket.Items)),
		zap.Int("total_minutes", ticket.TotalMinutes))

	// Убираем только забронированные слоты: выбранные за время транзакции остаются в сессии
	err = s.store.Update(ctx, sessionID, func(sel *scheduler.Selection) error {
		for _, slot := range slots {
			sel.RemoveSelection(slot.ID)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Failed to clear booked slots from session",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	if err := s.notifier.BookingCreated(ctx, instructor, ticket); err != nil {
		s.logger.Warn("Failed to notify instructor",
			zap.String("instructor_id", instructorID),
			zap.String("ticket_id", ticket.ID),
			zap.Error(err))
	}

	return ticket, nil
}

// buildTicket собирает заказ, позиции отсортированы по дате и времени начала
func buildTicket(instructorID string, customer Customer, slots []model.SlotSelection) *model.Ticket {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return scheduler.TimeToMinutes(slots[i].StartTime) < scheduler.TimeToMinutes(slots[j].StartTime)
	})

	ticket := &model.Ticket{
		InstructorID:  instructorID,
		CustomerName:  customer.Name,
		CustomerPhone: strings.TrimSpace(customer.Phone),
		Notes:         strings.TrimSpace(customer.Notes),
		Items:         make([]model.TicketItem, 0, len(slots)),
	}
	for _, slot := range slots {
		ticket.Items = append(ticket.Items, model.TicketItem{
			Date:            slot.Date,
			TimeStart:       slot.StartTime,
			TimeEnd:         slot.EndTime,
			DurationMinutes: slot.DurationMinutes,
		})
		ticket.TotalMinutes += slot.DurationMinutes
	}
	return ticket
}
