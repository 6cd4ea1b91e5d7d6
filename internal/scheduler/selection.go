package scheduler

import (
	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/google/uuid"
)

// Selection состояние набора слотов одной сессии создания бронирования.
//
// Инвариант: если selections не пуст, у всех элементов InstructorID равен
// teacherID; если пуст, teacherID пустой. Его поддерживает каждый метод,
// изменяющий состояние. Selection не потокобезопасен, доступ сериализует
// владелец (хранилище сессий).
type Selection struct {
	teacherID      string
	selections     []model.SlotSelection
	isResizing     bool
	activeResizeID string
}

// State сериализуемый снимок Selection
type State struct {
	TeacherID      string                `json:"teacher_id,omitempty"`
	Selections     []model.SlotSelection `json:"selections"`
	IsResizing     bool                  `json:"is_resizing"`
	ActiveResizeID string                `json:"active_resize_id,omitempty"`
}

// NewSelection создаёт пустую сессию
func NewSelection() *Selection {
	return &Selection{}
}

// CanSelectSlot проверяет, можно ли выбрать интервал [startTime, endTime).
// bookings и absences полные снимки, фильтрация по инструктору и дате внутри.
// Первое нарушенное правило определяет причину отказа.
func (s *Selection) CanSelectSlot(
	instructorID, date, startTime, endTime string,
	bookings []model.SchedulerBooking,
	absences []model.SchedulerAbsence,
) Result {
	start := TimeToMinutes(startTime)
	end := TimeToMinutes(endTime)
	duration := end - start

	// Дешёвые проверки, не зависящие от инструктора
	if start < OperationalStart {
		return reject(ReasonTooEarly)
	}
	if end > OperationalEnd {
		return reject(ReasonTooLate)
	}
	if duration < MinDuration {
		return reject(ReasonTooShort)
	}
	if duration > MaxDuration {
		return reject(ReasonTooLong)
	}

	if AbsenceCovers(instructorID, date, absences) {
		return reject(ReasonInstructorAbsent)
	}
	if OverlapsBooking(instructorID, date, start, end, bookings) {
		return reject(ReasonOccupied)
	}
	if overlapsSelection(instructorID, date, start, end, s.selections) {
		return reject(ReasonSelectionOverlap)
	}

	if s.teacherID != "" && s.teacherID != instructorID {
		return reject(ReasonSingleInstructor)
	}

	return accept()
}

// AddSelection добавляет слот, ID генерируется здесь.
// Перекрытия и часы работы не проверяются повторно, это делает CanSelectSlot.
// Отказ: слот без инструктора или слот другого инструктора при уже выбранном.
func (s *Selection) AddSelection(slot model.SlotSelection) (model.SlotSelection, bool) {
	if slot.InstructorID == "" {
		return model.SlotSelection{}, false
	}
	if s.teacherID != "" && s.teacherID != slot.InstructorID {
		return model.SlotSelection{}, false
	}

	slot.ID = newSelectionID()

	if s.teacherID == "" {
		s.teacherID = slot.InstructorID
	}
	s.selections = append(s.selections, slot)

	return slot, true
}

// RemoveSelection удаляет слот; после удаления последнего сессия снова открыта для любого инструктора
func (s *Selection) RemoveSelection(slotID string) {
	kept := s.selections[:0:0]
	for _, sel := range s.selections {
		if sel.ID != slotID {
			kept = append(kept, sel)
		}
	}
	s.selections = kept

	if len(s.selections) == 0 {
		s.teacherID = ""
	}
}

// UpdateSelectionDuration меняет конец и длительность слота на месте.
// Валидация не выполняется: вызывающий обязан проверить новый интервал заранее.
func (s *Selection) UpdateSelectionDuration(slotID, newEndTime string, newDurationMinutes int) {
	for i := range s.selections {
		if s.selections[i].ID == slotID {
			s.selections[i].EndTime = newEndTime
			s.selections[i].DurationMinutes = newDurationMinutes
			return
		}
	}
}

// ClearSelection возвращает сессию в начальное состояние
func (s *Selection) ClearSelection() {
	*s = Selection{}
}

// IsSlotSelected проверяет, занят ли момент at выбранным слотом
func (s *Selection) IsSlotSelected(instructorID, date, at string) bool {
	_, ok := s.SelectionAt(instructorID, date, at)
	return ok
}

// SelectionAt возвращает слот, содержащий момент at (полуоткрытый интервал)
func (s *Selection) SelectionAt(instructorID, date, at string) (model.SlotSelection, bool) {
	minute := TimeToMinutes(at)
	for _, sel := range s.selections {
		if sel.InstructorID != instructorID || sel.Date != date {
			continue
		}
		if Contains(TimeToMinutes(sel.StartTime), TimeToMinutes(sel.EndTime), minute) {
			return sel, true
		}
	}
	return model.SlotSelection{}, false
}

// SetResizing флаг UI, на бизнес-правила не влияет
func (s *Selection) SetResizing(isResizing bool, slotID string) {
	s.isResizing = isResizing
	if isResizing {
		s.activeResizeID = slotID
	} else {
		s.activeResizeID = ""
	}
}

// TotalHours суммарная длительность выбранных слотов в часах
func (s *Selection) TotalHours() float64 {
	total := 0
	for _, sel := range s.selections {
		total += sel.DurationMinutes
	}
	return float64(total) / 60
}

// TeacherID возвращает инструктора сессии; false, если сессия пуста
func (s *Selection) TeacherID() (string, bool) {
	return s.teacherID, s.teacherID != ""
}

// Selections возвращает копию выбранных слотов
func (s *Selection) Selections() []model.SlotSelection {
	out := make([]model.SlotSelection, len(s.selections))
	copy(out, s.selections)
	return out
}

// Get ищет слот по ID
func (s *Selection) Get(slotID string) (model.SlotSelection, bool) {
	for _, sel := range s.selections {
		if sel.ID == slotID {
			return sel, true
		}
	}
	return model.SlotSelection{}, false
}

func (s *Selection) IsResizing() bool {
	return s.isResizing
}

func (s *Selection) ActiveResizeID() string {
	return s.activeResizeID
}

func (s *Selection) IsEmpty() bool {
	return len(s.selections) == 0
}

// Without возвращает копию сессии без указанного слота.
// Нужна для проверки нового интервала при изменении длительности.
func (s *Selection) Without(slotID string) *Selection {
	clone := &Selection{
		teacherID:  s.teacherID,
		selections: s.Selections(),
	}
	clone.RemoveSelection(slotID)
	return clone
}

// Snapshot снимок для хранения вне процесса
func (s *Selection) Snapshot() State {
	return State{
		TeacherID:      s.teacherID,
		Selections:     s.Selections(),
		IsResizing:     s.isResizing,
		ActiveResizeID: s.activeResizeID,
	}
}

// Restore восстанавливает сессию из снимка.
// Снимок с нарушенным инвариантом сводится к пустой сессии.
func Restore(st State) *Selection {
	s := &Selection{
		teacherID:      st.TeacherID,
		isResizing:     st.IsResizing,
		activeResizeID: st.ActiveResizeID,
	}
	s.selections = append(s.selections, st.Selections...)

	if len(s.selections) == 0 {
		s.teacherID = ""
		return s
	}
	if s.teacherID == "" {
		return NewSelection()
	}
	for _, sel := range s.selections {
		if sel.InstructorID != s.teacherID {
			return NewSelection()
		}
	}
	return s
}

// newSelectionID UUIDv7: метка времени плюс случайная часть.
// Уникальность в пределах сессии, криптостойкость не требуется.
func newSelectionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
