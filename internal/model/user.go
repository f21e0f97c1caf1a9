package model

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleAdmin   Role = "ADMIN"
)

// User represents a system account. The ID doubles as the login name and is
// immutable after creation.
type User struct {
	ID             string `gorm:"primaryKey;size:64" json:"id"`
	Name           string `gorm:"size:256;not null" json:"name"`
	Email          string `gorm:"size:256" json:"email"`
	Phone          string `gorm:"size:32" json:"phone"`
	Role           Role   `gorm:"size:16;not null" json:"role"`
	Department     string `gorm:"size:256" json:"department"`
	ViolationCount int    `gorm:"not null;default:0" json:"violationCount"`
	IsLocked       bool   `gorm:"not null;default:false" json:"isLocked"`
	Password       string `gorm:"size:256;not null" json:"-"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsStaff reports whether the user may access staff-level routes.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}
