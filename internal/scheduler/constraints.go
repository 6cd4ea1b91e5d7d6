package scheduler

// Ограничения для частных занятий (часы работы подъёмников)
const (
	OperationalStart = 9 * 60  // 09:00
	OperationalEnd   = 16 * 60 // 16:00
	MinDuration      = 60
	MaxDuration      = 240
)

// Сообщения для сотрудников офиса, показываются в UI как есть
const (
	ReasonTooEarly         = "Frühester Start: 09:00"
	ReasonTooLate          = "Spätestes Ende: 16:00 (Liftschluss)"
	ReasonTooShort         = "Mindestdauer: 60 Minuten"
	ReasonTooLong          = "Maximale Dauer: 4 Stunden"
	ReasonInstructorAbsent = "Lehrer abwesend"
	ReasonOccupied         = "Zeitraum bereits belegt"
	ReasonSelectionOverlap = "Überschneidung mit anderer Auswahl"
	ReasonSingleInstructor = "Nur ein Lehrer pro Buchung"
)

// Result результат проверки выбора слота
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func accept() Result {
	return Result{Valid: true}
}

func reject(reason string) Result {
	return Result{Valid: false, Reason: reason}
}
