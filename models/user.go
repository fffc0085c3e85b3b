package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of access levels. Authorization decisions go
// through services.Viewer; raw string comparisons are not used elsewhere.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	gorm.Model
	Name          string
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	Role          Role   `gorm:"size:20;default:employee"`
	ResetToken    string
	ResetTokenExp time.Time
}
