package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/skischool_office/internal/controller/state"
	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository"
	"github.com/Freeeeeet/skischool_office/internal/scheduler"
	"go.uber.org/zap"
)

type BookingReader interface {
	ListForRange(ctx context.Context, filter repository.BookingFilter) ([]model.SchedulerBooking, error)
}

type AbsenceReader interface {
	ListActiveForRange(ctx context.Context, from, to string) ([]model.SchedulerAbsence, error)
}

type InstructorReader interface {
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	ListActive(ctx context.Context) ([]*model.Instructor, error)
}

// SlotRequest координаты ячейки сетки, полученные от жеста перетаскивания
type SlotRequest struct {
	InstructorID string
	Date         string
	StartTime    string
	EndTime      string
}

// StageResult итог попытки выбрать или изменить слот.
// При отказе Slot пустой, а Result.Reason содержит текст для пользователя.
type StageResult struct {
	Slot   model.SlotSelection
	Result scheduler.Result
}

// SessionView состояние сессии для отрисовки сетки
type SessionView struct {
	TeacherID      string
	Selections     []model.SlotSelection
	IsResizing     bool
	ActiveResizeID string
	TotalHours     float64
}

// DaySnapshot данные одного дня сетки
type DaySnapshot struct {
	Date        string
	Instructors []*model.Instructor
	Bookings    []model.SchedulerBooking
	Absences    []model.SchedulerAbsence
}

type SchedulerService struct {
	bookingRepo    BookingReader
	absenceRepo    AbsenceReader
	instructorRepo InstructorReader
	store          state.Store
	logger         *zap.Logger
}

func NewSchedulerService(
	bookingRepo BookingReader,
	absenceRepo AbsenceReader,
	instructorRepo InstructorReader,
	store state.Store,
	logger *zap.Logger,
) *SchedulerService {
	return &SchedulerService{
		bookingRepo:    bookingRepo,
		absenceRepo:    absenceRepo,
		instructorRepo: instructorRepo,
		store:          store,
		logger:         logger,
	}
}

// DaySnapshot получает инструкторов, занятия и отсутствия на день
func (s *SchedulerService) DaySnapshot(ctx context.Context, date string) (*DaySnapshot, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	instructors, err := s.instructorRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}

	bookings, absences, err := s.loadDay(ctx, date)
	if err != nil {
		return nil, err
	}

	return &DaySnapshot{
		Date:        date,
		Instructors: instructors,
		Bookings:    bookings,
		Absences:    absences,
	}, nil
}

// CheckSlot предварительная проверка без изменения сессии
func (s *SchedulerService) CheckSlot(ctx context.Context, sessionID string, req SlotRequest) (scheduler.Result, error) {
	req, err := s.validateRequest(ctx, req)
	if err != nil {
		return scheduler.Result{}, err
	}

	bookings, absences, err := s.loadDay(ctx, req.Date)
	if err != nil {
		return scheduler.Result{}, err
	}

	var res scheduler.Result
	err = s.store.View(ctx, sessionID, func(sel *scheduler.Selection) {
		res = sel.CanSelectSlot(req.InstructorID, req.Date, req.StartTime, req.EndTime, bookings, absences)
	})
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("view session: %w", err)
	}

	return res, nil
}

// StageSlot проверяет слот на свежих снимках и при успехе добавляет его в сессию
func (s *SchedulerService) StageSlot(ctx context.Context, sessionID string, req SlotRequest) (StageResult, error) {
	req, err := s.validateRequest(ctx, req)
	if err != nil {
		return StageResult{}, err
	}

	bookings, absences, err := s.loadDay(ctx, req.Date)
	if err != nil {
		return StageResult{}, err
	}

	var out StageResult
	err = s.store.Update(ctx, sessionID, func(sel *scheduler.Selection) error {
		out.Result = sel.CanSelectSlot(req.InstructorID, req.Date, req.StartTime, req.EndTime, bookings, absences)
		if !out.Result.Valid {
			return nil
		}

		added, ok := sel.AddSelection(model.SlotSelection{
			InstructorID:    req.InstructorID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: scheduler.TimeToMinutes(req.EndTime) - scheduler.TimeToMinutes(req.StartTime),
		})
		if !ok {
			out.Result = scheduler.Result{Valid: false, Reason: scheduler.ReasonSingleInstructor}
			return nil
		}
		out.Slot = added
		return nil
	})
	if err != nil {
		return StageResult{}, fmt.Errorf("update session: %w", err)
	}

	if out.Result.Valid {
		s.logger.Info("Slot staged",
			zap.String("session_id", sessionID),
			zap.String("slot_id", out.Slot.ID),
			zap.String("instructor_id", req.InstructorID),
			zap.String("date", req.Date),
			zap.String("start", req.StartTime),
			zap.String("end", req.EndTime))
	} else {
		s.logger.Debug("Slot rejected",
			zap.String("session_id", sessionID),
			zap.String("instructor_id", req.InstructorID),
			zap.String("reason", out.Result.Reason))
	}

	return out, nil
}

// ResizeSlot меняет конец слота. Новый интервал проверяется теми же правилами,
// что и при выборе, против сессии без самого слота.
func (s *SchedulerService) ResizeSlot(ctx context.Context, sessionID, slotID, newEndTime string) (StageResult, error) {
	endMinutes, err := scheduler.ParseClock(newEndTime)
	if err != nil {
		return StageResult{}, ErrInvalidTime
	}
	newEndTime = scheduler.MinutesToTime(endMinutes)

	current, err := s.findSlot(ctx, sessionID, slotID)
	if err != nil {
		return StageResult{}, err
	}
	if scheduler.TimeToMinutes(newEndTime) <= scheduler.TimeToMinutes(current.StartTime) {
		return StageResult{}, ErrInvalidTimeRange
	}

	bookings, absences, err := s.loadDay(ctx, current.Date)
	if err != nil {
		return StageResult{}, err
	}

	var out StageResult
	err = s.store.Update(ctx, sessionID, func(sel *scheduler.Selection) error {
		slot, ok := sel.Get(slotID)
		if !ok {
			return ErrSlotNotFound
		}

		out.Result = sel.Without(slotID).CanSelectSlot(
			slot.InstructorID, slot.Date, slot.StartTime, newEndTime, bookings, absences)
		if !out.Result.Valid {
			return nil
		}

		duration := scheduler.TimeToMinutes(newEndTime) - scheduler.TimeToMinutes(slot.StartTime)
		sel.UpdateSelectionDuration(slotID, newEndTime, duration)
		out.Slot, _ = sel.Get(slotID)
		return nil
	})
	if err != nil {
		return StageResult{}, err
	}

	if out.Result.Valid {
		s.logger.Info("Slot resized",
			zap.String("session_id", sessionID),
			zap.String("slot_id", slotID),
			zap.String("end", newEndTime),
			zap.Int("duration_minutes", out.Slot.DurationMinutes))
	}

	return out, nil
}

// RemoveSlot удаляет слот из сессии; неизвестный ID не ошибка
func (s *SchedulerService) RemoveSlot(ctx context.Context, sessionID, slotID string) error {
	err := s.store.Update(ctx, sessionID, func(sel *scheduler.Selection) error {
		sel.RemoveSelection(slotID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	s.logger.Info("Slot removed",
		zap.String("session_id", sessionID),
		zap.String("slot_id", slotID))

	return nil
}

// ClearSession отменяет весь набор; повторный вызов ничего не меняет
func (s *SchedulerService) ClearSession(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Info("Session cleared", zap.String("session_id", sessionID))
	return nil
}

// Session возвращает состояние сессии
func (s *SchedulerService) Session(ctx context.Context, sessionID string) (SessionView, error) {
	var view SessionView
	err := s.store.View(ctx, sessionID, func(sel *scheduler.Selection) {
		view = viewOf(sel)
	})
	if err != nil {
		return SessionView{}, fmt.Errorf("view session: %w", err)
	}
	return view, nil
}

// SlotAt ищет выбранный слот в ячейке (instructorID, date, at)
func (s *SchedulerService) SlotAt(ctx context.Context, sessionID, instructorID, date, at string) (model.SlotSelection, bool, error) {
	if err := validateDate(date); err != nil {
		return model.SlotSelection{}, false, err
	}
	if _, err := scheduler.ParseClock(at); err != nil {
		return model.SlotSelection{}, false, ErrInvalidTime
	}

	var (
		slot  model.SlotSelection
		found bool
	)
	err := s.store.View(ctx, sessionID, func(sel *scheduler.Selection) {
		slot, found = sel.SelectionAt(instructorID, date, at)
	})
	if err != nil {
		return model.SlotSelection{}, false, fmt.Errorf("view session: %w", err)
	}
	return slot, found, nil
}

// SetResizing переключает флаг изменения размера для UI
func (s *SchedulerService) SetResizing(ctx context.Context, sessionID string, isResizing bool, slotID string) (SessionView, error) {
	var view SessionView
	err := s.store.Update(ctx, sessionID, func(sel *scheduler.Selection) error {
		if isResizing {
			if _, ok := sel.Get(slotID); !ok {
				return ErrSlotNotFound
			}
		}
		sel.SetResizing(isResizing, slotID)
		view = viewOf(sel)
		return nil
	})
	if err != nil {
		return SessionView{}, err
	}
	return view, nil
}

func (s *SchedulerService) findSlot(ctx context.Context, sessionID, slotID string) (model.SlotSelection, error) {
	var (
		slot  model.SlotSelection
		found bool
	)
	err := s.store.View(ctx, sessionID, func(sel *scheduler.Selection) {
		slot, found = sel.Get(slotID)
	})
	if err != nil {
		return model.SlotSelection{}, fmt.Errorf("view session: %w", err)
	}
	if !found {
		return model.SlotSelection{}, ErrSlotNotFound
	}
	return slot, nil
}

// loadDay свежие снимки занятий и отсутствий на один день
func (s *SchedulerService) loadDay(ctx context.Context, date string) ([]model.SchedulerBooking, []model.SchedulerAbsence, error) {
	bookings, err := s.bookingRepo.ListForRange(ctx, repository.BookingFilter{From: date, To: date})
	if err != nil {
		return nil, nil, fmt.Errorf("load bookings: %w", err)
	}

	absences, err := s.absenceRepo.ListActiveForRange(ctx, date, date)
	if err != nil {
		return nil, nil, fmt.Errorf("load absences: %w", err)
	}

	return bookings, absences, nil
}

// validateRequest проверяет формат и приводит время к виду HH:MM
func (s *SchedulerService) validateRequest(ctx context.Context, req SlotRequest) (SlotRequest, error) {
	if err := validateDate(req.Date); err != nil {
		return req, err
	}

	start, err := scheduler.ParseClock(req.StartTime)
	if err != nil {
		return req, ErrInvalidTime
	}
	end, err := scheduler.ParseClock(req.EndTime)
	if err != nil {
		return req, ErrInvalidTime
	}
	if start >= end {
		return req, ErrInvalidTimeRange
	}
	req.StartTime = scheduler.MinutesToTime(start)
	req.EndTime = scheduler.MinutesToTime(end)

	instructor, err := s.instructorRepo.GetByID(ctx, req.InstructorID)
	if err != nil {
		return req, fmt.Errorf("get instructor: %w", err)
	}
	if instructor == nil || !instructor.IsActive {
		return req, ErrInstructorNotFound
	}

	return req, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func viewOf(sel *scheduler.Selection) SessionView {
	teacherID, _ := sel.TeacherID()
	return SessionView{
		TeacherID:      teacherID,
		Selections:     sel.Selections(),
		IsResizing:     sel.IsResizing(),
		ActiveResizeID: sel.ActiveResizeID(),
		TotalHours:     sel.TotalHours(),
	}
}
