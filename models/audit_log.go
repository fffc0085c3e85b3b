package models

import "time"

type AuditLog struct {
	ID         uint `gorm:"primaryKey"`
	ContractID uint `gorm:"index"`
	UserID     uint
	UserName   string
	Action     string `gorm:"size:30"` // CREATE | UPDATE | DELETE | UPLOAD
	Details    string `gorm:"type:text"`
	CreatedAt  time.Time
}
