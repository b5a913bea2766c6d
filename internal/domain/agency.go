package domain

import "time"

const RoleAgency = "agency"

type Agency struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" validate:"required"`
	Email        string    `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Website      string    `json:"website,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
