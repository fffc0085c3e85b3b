package services

import (
	"log"

	"github.com/mitlacherp/local-contract-manager/models"

	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Log records a contract action. Audit writes are fire-and-forget: a
// failed entry is logged but never fails the request that caused it.
func (s *AuditService) Log(contractID, userID uint, userName, action, details string) {
	entry := models.AuditLog{
		ContractID: contractID,
		UserID:     userID,
		UserName:   userName,
		Action:     action,
		Details:    details,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Audit log error: %v", err)
	}
}

func (s *AuditService) ListForContract(contractID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := s.db.Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
