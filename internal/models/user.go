package models

import (
	"time"
)

// User is an account that can sign in to the portal. Farmers get one on
// registration; auditor, committee and admin accounts are provisioned by an
// administrator. Role values are defined in the auth package.
type User struct {
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Email        string    `gorm:"size:255;uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string    `gorm:"size:255;not null;column:password_hash" json:"-"`
	FirstName    string    `gorm:"size:255;column:first_name" json:"firstName"`
	LastName     string    `gorm:"size:255;column:last_name" json:"lastName"`
	Role         string    `gorm:"size:32;not null;index;column:role" json:"role"`
	ID           uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (User) TableName() string {
	return "users"
}

// FullName returns the display name used in tokens and reports.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
