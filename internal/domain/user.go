package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	DisplayName  string    `json:"display_name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
