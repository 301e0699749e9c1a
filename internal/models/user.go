package models

import "time"

// User локальный пользователь, привязанный к subject id внешнего SSO.
// Создается лениво при первой успешной аутентификации.
type User struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	ExternalID uint      `json:"userID" gorm:"column:user_id;uniqueIndex;not null"`
}
