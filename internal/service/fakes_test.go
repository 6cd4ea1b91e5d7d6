package service

import (
	"context"
	"errors"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository"
)

type fakeBookings struct {
	items []model.SchedulerBooking
	err   error
}

func (f *fakeBookings) ListForRange(_ context.Context, filter repository.BookingFilter) ([]model.SchedulerBooking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.SchedulerBooking
	for _, b := range f.items {
		if b.Date >= filter.From && b.Date <= filter.To {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAbsences struct {
	items []model.SchedulerAbsence
}

func (f *fakeAbsences) ListActiveForRange(_ context.Context, from, to string) ([]model.SchedulerAbsence, error) {
	var out []model.SchedulerAbsence
	for _, a := range f.items {
		if a.StartDate <= to && a.EndDate >= from {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeInstructors struct {
	byID map[string]*model.Instructor
}

func newFakeInstructors(ids ...string) *fakeInstructors {
	f := &fakeInstructors{byID: make(map[string]*model.Instructor)}
	for _, id := range ids {
		f.byID[id] = &model.Instructor{ID: id, FirstName: "Instructor " + id, IsActive: true}
	}
	return f
}

func (f *fakeInstructors) GetByID(_ context.Context, id string) (*model.Instructor, error) {
	return f.byID[id], nil
}

func (f *fakeInstructors) ListActive(_ context.Context) ([]*model.Instructor, error) {
	var out []*model.Instructor
	for _, i := range f.byID {
		if i.IsActive {
			out = append(out, i)
		}
	}
	return out, nil
}

// fakeTx имитирует транзакцию: изменения видны только после успешного fn
type fakeTx struct {
	booked   []model.SchedulerBooking
	tickets  []*model.Ticket
	locks    []string
	failWith error
}

func (f *fakeTx) InBookingTx(ctx context.Context, fn func(w repository.BookingWriter) error) error {
	w := &fakeWriter{parent: f}
	if err := fn(w); err != nil {
		return err
	}
	if f.failWith != nil {
		return f.failWith
	}
	f.booked = append(f.booked, w.booked...)
	f.tickets = append(f.tickets, w.tickets...)
	return nil
}

type fakeWriter struct {
	parent  *fakeTx
	booked  []model.SchedulerBooking
	tickets []*model.Ticket
}

func (w *fakeWriter) LockInstructorDay(_ context.Context, instructorID, date string) error {
	w.parent.locks = append(w.parent.locks, instructorID+"/"+date)
	return nil
}

func (w *fakeWriter) HasOverlap(_ context.Context, instructorID, date, start, end string) (bool, error) {
	for _, b := range append(w.parent.booked, w.booked...) {
		if b.InstructorID == instructorID && b.Date == date && b.TimeStart < end && b.TimeEnd > start {
			return true, nil
		}
	}
	return false, nil
}

func (w *fakeWriter) CreateTicket(_ context.Context, ticket *model.Ticket) error {
	ticket.ID = "ticket-1"
	w.tickets = append(w.tickets, ticket)
	return nil
}

func (w *fakeWriter) CreatePrivateBooking(_ context.Context, ticketID, instructorID string, item *model.TicketItem) error {
	if ticketID == "" {
		return errors.New("ticket id is empty")
	}
	item.BookingID = "booking-" + item.Date + "-" + item.TimeStart
	w.booked = append(w.booked, model.SchedulerBooking{
		ID:           item.BookingID,
		InstructorID: instructorID,
		Date:         item.Date,
		TimeStart:    item.TimeStart,
		TimeEnd:      item.TimeEnd,
		Type:         model.BookingTypePrivate,
		TicketID:     &ticketID,
		Status:       model.BookingStatusConfirmed,
	})
	return nil
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) BookingCreated(_ context.Context, _ *model.Instructor, _ *model.Ticket) error {
	f.calls++
	return f.err
}
