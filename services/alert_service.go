package services

import (
	"errors"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAlertNotFound = errors.New("alert not found")

// AlertService is the ledger side of the engine: it owns every write to
// the alerts table and the visibility-scoped reads over it.
type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// TryEmit inserts an alert unless an unread one already exists for the
// same (contract, type) pair. The conflict target is the partial unique
// index on unread rows, so concurrent scans over a shared database
// cannot double-insert: the losing writer's row is dropped by the
// database, not by a racy existence check. Returns whether a row was
// actually inserted; a skip is the normal steady state, not an error.
func (s *AlertService) TryEmit(contractID uint, alertType models.AlertType, message string) (bool, error) {
	alert := models.Alert{
		ContractID: contractID,
		AlertType:  alertType,
		Message:    message,
		CreatedAt:  time.Now(),
	}

	// The conflict-target predicate must be literal SQL: a bound
	// parameter here cannot be matched against the partial index
	// definition, and the database rejects the conflict target.
	res := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contract_id"}, {Name: "alert_type"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "is_read = false"},
		}},
		DoNothing: true,
	}).Create(&alert)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// HasUnread reports whether the dedup invariant currently blocks a pair.
func (s *AlertService) HasUnread(contractID uint, alertType models.AlertType) (bool, error) {
	var count int64
	err := s.db.Model(&models.Alert{}).
		Where("contract_id = ? AND alert_type = ? AND is_read = ?", contractID, alertType, false).
		Count(&count).Error
	return count > 0, err
}

// ListForViewer returns the alerts the viewer may see, newest first.
func (s *AlertService) ListForViewer(v Viewer) ([]models.Alert, error) {
	var alerts []models.Alert
	err := ScopeAlerts(s.db.Model(&models.Alert{}), v).
		Order("alerts.created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

// MarkRead flips one alert to read, which releases the dedup block for
// its (contract, type) pair. The viewer must be allowed to see the
// alert; anything outside their scope behaves as missing.
func (s *AlertService) MarkRead(alertID uint, v Viewer) error {
	q := s.db.Model(&models.Alert{}).Where("id = ?", alertID)
	if !v.IsAdmin() {
		owned := s.db.Model(&models.Contract{}).Select("id").Where("created_by = ?", v.UserID)
		q = q.Where("contract_id IN (?)", owned)
	}
	res := q.Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

// UnreadCountForViewer backs the dashboard badge.
func (s *AlertService) UnreadCountForViewer(v Viewer) (int64, error) {
	var count int64
	err := ScopeAlerts(s.db.Model(&models.Alert{}), v).
		Where("alerts.is_read = ?", false).
		Count(&count).Error
	return count, err
}
