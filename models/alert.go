package models

import "time"

type AlertType string

const (
	AlertExpiry AlertType = "expiry"
	AlertNotice AlertType = "notice"
)

// Alert rows are created only by the scan and flipped to read by the
// read API. The partial unique index is the dedup invariant: at most one
// unread alert per (contract, type). Inserts race through it, not
// through application checks.
type Alert struct {
	ID         uint      `gorm:"primaryKey"`
	ContractID uint      `gorm:"not null;index;uniqueIndex:idx_alerts_unread,where:is_read = false"`
	AlertType  AlertType `gorm:"size:20;not null;uniqueIndex:idx_alerts_unread,where:is_read = false"`
	Message    string    `gorm:"type:text"`
	IsRead     bool      `gorm:"default:false"`
	CreatedAt  time.Time
}
