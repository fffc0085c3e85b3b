package models

import (
	"time"

	"gorm.io/gorm"
)

type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractDraft      ContractStatus = "draft"
	ContractTerminated ContractStatus = "terminated"
	ContractExpired    ContractStatus = "expired"
)

type Contract struct {
	gorm.Model
	Title             string `gorm:"not null"`
	PartnerName       string `gorm:"index"`
	Category          string
	StartDate         *time.Time
	EndDate           *time.Time     `gorm:"index"`
	NoticePeriodDays  int            `gorm:"default:0"`
	AutoRenewal       bool           `gorm:"default:false"`
	CostAmount        float64
	CostCurrency      string `gorm:"size:10"`
	ResponsiblePerson string
	ResponsibleEmail  string
	Status            ContractStatus `gorm:"size:20;index;default:active"`
	CreatedBy         uint           `gorm:"index"`
}
