package scheduler

import "github.com/Freeeeeet/skischool_office/internal/model"

// Overlaps проверяет пересечение полуоткрытых интервалов [aStart, aEnd) и [bStart, bEnd).
// Соприкасающиеся интервалы не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// Contains проверяет попадание момента в [start, end)
func Contains(start, end, at int) bool {
	return at >= start && at < end
}

// AbsenceCovers ищет отсутствие инструктора, включающее дату
func AbsenceCovers(instructorID, date string, absences []model.SchedulerAbsence) bool {
	for _, a := range absences {
		if a.InstructorID != instructorID {
			continue
		}
		// ISO-даты сравниваются лексикографически
		if date >= a.StartDate && date <= a.EndDate {
			return true
		}
	}
	return false
}

// OverlapsBooking ищет занятие инструктора в этот день, пересекающее [start, end)
func OverlapsBooking(instructorID, date string, start, end int, bookings []model.SchedulerBooking) bool {
	for _, b := range bookings {
		if b.InstructorID != instructorID || b.Date != date {
			continue
		}
		if Overlaps(start, end, TimeToMinutes(b.TimeStart), TimeToMinutes(b.TimeEnd)) {
			return true
		}
	}
	return false
}

func overlapsSelection(instructorID, date string, start, end int, selections []model.SlotSelection) bool {
	for _, s := range selections {
		if s.InstructorID != instructorID || s.Date != date {
			continue
		}
		if Overlaps(start, end, TimeToMinutes(s.StartTime), TimeToMinutes(s.EndTime)) {
			return true
		}
	}
	return false
}
