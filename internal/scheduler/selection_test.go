package scheduler

import (
	"testing"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = "2025-01-11"

func slot(instructorID, date, start, end string) model.SlotSelection {
	return model.SlotSelection{
		InstructorID:    instructorID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: TimeToMinutes(end) - TimeToMinutes(start),
	}
}

// assertInvariant проверяет связь teacherID и списка слотов
func assertInvariant(t *testing.T, s *Selection) {
	t.Helper()
	teacherID, ok := s.TeacherID()
	if s.IsEmpty() {
		assert.False(t, ok, "empty selection must not keep a teacher")
		return
	}
	require.True(t, ok, "non-empty selection must have a teacher")
	for _, sel := range s.Selections() {
		assert.Equal(t, teacherID, sel.InstructorID)
	}
}

func TestCanSelectSlot_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		valid  bool
		reason string
	}{
		{"at operational start", "09:00", "10:00", true, ""},
		{"before operational start", "08:00", "09:00", false, ReasonTooEarly},
		{"ends at operational end", "15:00", "16:00", true, ""},
		{"ends after operational end", "15:01", "16:01", false, ReasonTooLate},
		{"below minimum", "09:00", "09:59", false, ReasonTooShort},
		{"at maximum", "09:00", "13:00", true, ""},
		{"above maximum", "09:00", "13:01", false, ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection()
			res := s.CanSelectSlot("I1", day, tt.start, tt.end, nil, nil)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestCanSelectSlot_RuleOrder(t *testing.T) {
	s := NewSelection()
	absences := []model.SchedulerAbsence{{InstructorID: "I1", StartDate: day, EndDate: day}}

	// Часы работы проверяются раньше отсутствия
	res := s.CanSelectSlot("I1", day, "08:00", "09:30", nil, absences)
	assert.Equal(t, ReasonTooEarly, res.Reason)

	// Длительность раньше отсутствия
	res = s.CanSelectSlot("I1", day, "10:00", "10:30", nil, absences)
	assert.Equal(t, ReasonTooShort, res.Reason)

	// Отсутствие раньше занятости
	bookings := []model.SchedulerBooking{{InstructorID: "I1", Date: day, TimeStart: "10:00", TimeEnd: "11:00"}}
	res = s.CanSelectSlot("I1", day, "10:00", "11:00", bookings, absences)
	assert.Equal(t, ReasonInstructorAbsent, res.Reason)
}

func TestCanSelectSlot_AbsenceBlocksSelection(t *testing.T) {
	absence := model.SchedulerAbsence{ID: "a1", InstructorID: "I1", StartDate: "2025-01-10", EndDate: "2025-01-12"}
	s := NewSelection()

	res := s.CanSelectSlot("I1", "2025-01-11", "10:00", "11:00", nil, []model.SchedulerAbsence{absence})
	assert.Equal(t, Result{Valid: false, Reason: "Lehrer abwesend"}, res)

	// Границы включительно
	assert.False(t, s.CanSelectSlot("I1", "2025-01-10", "10:00", "11:00", nil, []model.SchedulerAbsence{absence}).Valid)
	assert.False(t, s.CanSelectSlot("I1", "2025-01-12", "10:00", "11:00", nil, []model.SchedulerAbsence{absence}).Valid)
	assert.True(t, s.CanSelectSlot("I1", "2025-01-13", "10:00", "11:00", nil, []model.SchedulerAbsence{absence}).Valid)

	// Чужое отсутствие не мешает
	assert.True(t, s.CanSelectSlot("I2", "2025-01-11", "10:00", "11:00", nil, []model.SchedulerAbsence{absence}).Valid)
}

func TestCanSelectSlot_BookingOverlap(t *testing.T) {
	bookings := []model.SchedulerBooking{
		{ID: "b1", InstructorID: "I1", Date: day, TimeStart: "10:00", TimeEnd: "11:00", Type: model.BookingTypePrivate},
	}
	s := NewSelection()

	res := s.CanSelectSlot("I1", day, "10:30", "11:30", bookings, nil)
	assert.False(t, res.Valid)
	assert.Equal(t, "Zeitraum bereits belegt", res.Reason)

	// Соприкасается, но не пересекается
	assert.True(t, s.CanSelectSlot("I1", day, "11:00", "12:00", bookings, nil).Valid)
	assert.True(t, s.CanSelectSlot("I1", day, "09:00", "10:00", bookings, nil).Valid)

	// Другой день и другой инструктор
	assert.True(t, s.CanSelectSlot("I1", "2025-01-12", "10:30", "11:30", bookings, nil).Valid)
	assert.True(t, s.CanSelectSlot("I2", day, "10:30", "11:30", bookings, nil).Valid)
}

func TestCanSelectSlot_BookingWithSeconds(t *testing.T) {
	bookings := []model.SchedulerBooking{{InstructorID: "I1", Date: day, TimeStart: "10:00:00", TimeEnd: "11:00:00"}}
	s := NewSelection()

	assert.False(t, s.CanSelectSlot("I1", day, "10:00", "11:00", bookings, nil).Valid)
	assert.True(t, s.CanSelectSlot("I1", day, "11:00", "12:00", bookings, nil).Valid)
}

func TestCanSelectSlot_SelectionOverlap(t *testing.T) {
	s := NewSelection()
	_, ok := s.AddSelection(slot("I1", day, "10:00", "12:00"))
	require.True(t, ok)

	res := s.CanSelectSlot("I1", day, "11:00", "13:00", nil, nil)
	assert.Equal(t, ReasonSelectionOverlap, res.Reason)

	assert.True(t, s.CanSelectSlot("I1", day, "12:00", "13:00", nil, nil).Valid)
	assert.True(t, s.CanSelectSlot("I1", "2025-01-12", "10:00", "12:00", nil, nil).Valid)
}

func TestCanSelectSlot_SingleInstructor(t *testing.T) {
	s := NewSelection()
	_, ok := s.AddSelection(slot("I1", day, "10:00", "11:00"))
	require.True(t, ok)

	res := s.CanSelectSlot("I2", day, "10:00", "11:00", nil, nil)
	assert.Equal(t, Result{Valid: false, Reason: ReasonSingleInstructor}, res)
}

func TestAddSelection_SingleInstructorSession(t *testing.T) {
	s := NewSelection()

	first, ok := s.AddSelection(slot("I1", day, "10:00", "11:00"))
	require.True(t, ok)
	assert.NotEmpty(t, first.ID)

	_, ok = s.AddSelection(slot("I2", day, "12:00", "13:00"))
	assert.False(t, ok)

	selections := s.Selections()
	require.Len(t, selections, 1)
	assert.Equal(t, first, selections[0])
	teacherID, _ := s.TeacherID()
	assert.Equal(t, "I1", teacherID)
	assertInvariant(t, s)
}

func TestAddSelection_RequiresInstructor(t *testing.T) {
	s := NewSelection()

	_, ok := s.AddSelection(slot("", day, "10:00", "11:00"))
	assert.False(t, ok)
	assert.True(t, s.IsEmpty())
	assertInvariant(t, s)

	// Сессия остаётся открытой для любого инструктора
	_, ok = s.AddSelection(slot("I2", day, "10:00", "11:00"))
	require.True(t, ok)
	_, ok = s.AddSelection(slot("", day, "12:00", "13:00"))
	assert.False(t, ok)
	assert.Len(t, s.Selections(), 1)
	assertInvariant(t, s)
}

func TestAddSelection_UniqueIDs(t *testing.T) {
	s := NewSelection()
	seen := make(map[string]bool)
	for _, start := range []string{"09:00", "10:00", "11:00", "12:00", "13:00"} {
		sel, ok := s.AddSelection(slot("I1", day, start, MinutesToTime(TimeToMinutes(start)+60)))
		require.True(t, ok)
		assert.False(t, seen[sel.ID], "duplicate id %s", sel.ID)
		seen[sel.ID] = true
	}
}

func TestRemoveSelection_ReopensSession(t *testing.T) {
	s := NewSelection()
	a, _ := s.AddSelection(slot("I1", day, "10:00", "11:00"))
	b, _ := s.AddSelection(slot("I1", day, "12:00", "13:00"))

	s.RemoveSelection(a.ID)
	assertInvariant(t, s)
	teacherID, ok := s.TeacherID()
	assert.True(t, ok)
	assert.Equal(t, "I1", teacherID)

	s.RemoveSelection(b.ID)
	assertInvariant(t, s)
	_, ok = s.TeacherID()
	assert.False(t, ok)

	// Пустая сессия принимает другого инструктора
	_, ok = s.AddSelection(slot("I2", day, "10:00", "11:00"))
	assert.True(t, ok)
	assertInvariant(t, s)
}

func TestRemoveSelection_UnknownID(t *testing.T) {
	s := NewSelection()
	_, _ = s.AddSelection(slot("I1", day, "10:00", "11:00"))

	s.RemoveSelection("missing")
	assert.Len(t, s.Selections(), 1)
	assertInvariant(t, s)
}

func TestUpdateSelectionDuration_DoesNotValidate(t *testing.T) {
	s := NewSelection()
	a, _ := s.AddSelection(slot("I1", day, "10:00", "11:00"))

	// Выход за 4 часа и конец дня принимается: проверка на стороне вызывающего
	s.UpdateSelectionDuration(a.ID, "16:30", 390)

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "16:30", got.EndTime)
	assert.Equal(t, 390, got.DurationMinutes)
	assert.Equal(t, "10:00", got.StartTime)
}

func TestClearSelection_Idempotent(t *testing.T) {
	s := NewSelection()
	a, _ := s.AddSelection(slot("I1", day, "10:00", "11:00"))
	s.SetResizing(true, a.ID)

	s.ClearSelection()
	once := s.Snapshot()
	s.ClearSelection()
	twice := s.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, NewSelection().Snapshot(), once)
	assertInvariant(t, s)
}

func TestSelectionAt_HalfOpen(t *testing.T) {
	s := NewSelection()
	a, _ := s.AddSelection(slot("I1", day, "10:00", "11:00"))

	got, ok := s.SelectionAt("I1", day, "10:00")
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)

	assert.True(t, s.IsSlotSelected("I1", day, "10:59"))
	assert.False(t, s.IsSlotSelected("I1", day, "11:00"))
	assert.False(t, s.IsSlotSelected("I1", day, "09:59"))
	assert.False(t, s.IsSlotSelected("I2", day, "10:30"))
	assert.False(t, s.IsSlotSelected("I1", "2025-01-12", "10:30"))
}

func TestSetResizing(t *testing.T) {
	s := NewSelection()
	s.SetResizing(true, "x")
	assert.True(t, s.IsResizing())
	assert.Equal(t, "x", s.ActiveResizeID())

	s.SetResizing(false, "x")
	assert.False(t, s.IsResizing())
	assert.Empty(t, s.ActiveResizeID())
}

func TestTotalHours(t *testing.T) {
	s := NewSelection()
	assert.Zero(t, s.TotalHours())

	_, _ = s.AddSelection(slot("I1", day, "09:00", "10:00"))
	_, _ = s.AddSelection(slot("I1", day, "11:00", "12:30"))

	assert.InDelta(t, 2.5, s.TotalHours(), 1e-9)
}

func TestWithout_LeavesOriginalUntouched(t *testing.T) {
	s := NewSelection()
	a, _ := s.AddSelection(slot("I1", day, "10:00", "11:00"))
	_, _ = s.AddSelection(slot("I1", day, "11:00", "12:00"))

	clone := s.Without(a.ID)
	assert.Len(t, clone.Selections(), 1)
	assert.Len(t, s.Selections(), 2)

	// Продление первого слота упирается во второй
	res := clone.CanSelectSlot("I1", day, "10:00", "11:30", nil, nil)
	assert.Equal(t, ReasonSelectionOverlap, res.Reason)
}

func TestSnapshotRestore(t *testing.T) {
	s := NewSelection()
	a, _ := s.AddSelection(slot("I1", day, "10:00", "11:00"))
	s.SetResizing(true, a.ID)

	restored := Restore(s.Snapshot())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	assertInvariant(t, restored)
}

func TestRestore_BrokenInvariant(t *testing.T) {
	broken := State{
		TeacherID: "I1",
		Selections: []model.SlotSelection{
			slot("I1", day, "10:00", "11:00"),
			slot("I2", day, "12:00", "13:00"),
		},
	}
	restored := Restore(broken)
	assert.True(t, restored.IsEmpty())
	assertInvariant(t, restored)

	anonymous := Restore(State{Selections: []model.SlotSelection{slot("", day, "10:00", "11:00")}})
	assert.True(t, anonymous.IsEmpty())
	assertInvariant(t, anonymous)

	dangling := Restore(State{TeacherID: "I1"})
	_, ok := dangling.TeacherID()
	assert.False(t, ok)
}

// TestInvariant_RandomWalk прогоняет смешанную последовательность операций
func TestInvariant_RandomWalk(t *testing.T) {
	s := NewSelection()
	instructors := []string{"I1", "", "I2", "I3"}
	var ids []string

	for i := 0; i < 60; i++ {
		instr := instructors[i%len(instructors)]
		start := OperationalStart + (i%6)*60
		switch i % 5 {
		case 0, 1, 2:
			if sel, ok := s.AddSelection(slot(instr, day, MinutesToTime(start), MinutesToTime(start+60))); ok {
				ids = append(ids, sel.ID)
			}
		case 3:
			if len(ids) > 0 {
				s.RemoveSelection(ids[0])
				ids = ids[1:]
			}
		case 4:
			if i%20 == 4 {
				s.ClearSelection()
				ids = nil
			}
		}
		assertInvariant(t, s)
	}
}
