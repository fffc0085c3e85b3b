package models

import "time"

type Attachment struct {
	ID           uint   `gorm:"primaryKey"`
	ContractID   uint   `gorm:"not null;index"`
	StorageKey   string `gorm:"not null"` // S3 object key
	OriginalName string
	MimeType     string
	Size         int64
	UploadedAt   time.Time `gorm:"autoCreateTime"`
}
