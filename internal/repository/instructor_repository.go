package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/Freeeeeet/skischool_office/internal/repository/base"
)

type InstructorRepository struct {
	*base.Repository
}

func NewInstructorRepository(db base.DBTX) *InstructorRepository {
	return &InstructorRepository{Repository: base.NewRepository(db)}
}

// GetByID получает инструктора по ID
func (r *InstructorRepository) GetByID(ctx context.Context, id string) (*model.Instructor, error) {
	query := `
		SELECT id, first_name, last_name, telegram_chat_id, is_active, created_at
		FROM instructors
		WHERE id = $1
	`

	var instructor model.Instructor
	err := r.DB().QueryRow(ctx, query, id).Scan(
		&instructor.ID,
		&instructor.FirstName,
		&instructor.LastName,
		&instructor.TelegramChatID,
		&instructor.IsActive,
		&instructor.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get instructor by id: %w", err)
	}

	return &instructor, nil
}

// ListActive получает всех активных инструкторов (строки сетки)
func (r *InstructorRepository) ListActive(ctx context.Context) ([]*model.Instructor, error) {
	query := `
		SELECT id, first_name, last_name, telegram_chat_id, is_active, created_at
		FROM instructors
		WHERE is_active = TRUE
		ORDER BY last_name, first_name
	`

	rows, err := r.DB().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	defer rows.Close()

	var instructors []*model.Instructor
	for rows.Next() {
		var instructor model.Instructor
		err := rows.Scan(
			&instructor.ID,
			&instructor.FirstName,
			&instructor.LastName,
			&instructor.TelegramChatID,
			&instructor.IsActive,
			&instructor.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan instructor: %w", err)
		}
		instructors = append(instructors, &instructor)
	}

	return instructors, rows.Err()
}
