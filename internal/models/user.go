package models

import (
	"time"
)

// User is a marketplace account: farmer (seller), company (buyer), or admin
// (moderator). Role is fixed at creation; admin rows are provisioned directly
// in the database, never through registration.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null" json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
