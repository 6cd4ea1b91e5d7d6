package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository/base"
)

type AbsenceRepository struct {
	*base.Repository
}

func NewAbsenceRepository(db base.DBTX) *AbsenceRepository {
	return &AbsenceRepository{Repository: base.NewRepository(db)}
}

// ListActiveForRange получает подтверждённые и ожидающие отсутствия,
// пересекающие диапазон дат [from, to] (включительно)
func (r *AbsenceRepository) ListActiveForRange(ctx context.Context, from, to string) ([]model.SchedulerAbsence, error) {
	query := `
		SELECT id, instructor_id,
		       to_char(start_date, 'YYYY-MM-DD'),
		       to_char(end_date, 'YYYY-MM-DD'),
		       type, status
		FROM absences
		WHERE status IN ('pending', 'confirmed')
		  AND start_date <= $2::date
		  AND end_date >= $1::date
		ORDER BY start_date
	`

	rows, err := r.DB().Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	defer rows.Close()

	var absences []model.SchedulerAbsence
	for rows.Next() {
		var a model.SchedulerAbsence
		err := rows.Scan(
			&a.ID,
			&a.InstructorID,
			&a.StartDate,
			&a.EndDate,
			&a.Type,
			&a.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan absence: %w", err)
		}
		absences = append(absences, a)
	}

	return absences, rows.Err()
}
