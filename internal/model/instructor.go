package model

import "time"

// Instructor представляет лыжного инструктора школы
type Instructor struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	TelegramChatID *int64    `json:"telegram_chat_id"` // nil - уведомления не отправляются
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullName возвращает имя инструктора для отображения
func (i *Instructor) FullName() string {
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}
