package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"

	"gorm.io/gorm"
)

var ErrContractNotFound = errors.New("contract not found or access denied")

type ContractService struct {
	db *gorm.DB
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{db: db}
}

// ListActiveContracts implements SnapshotProvider for the scanner. It
// deliberately ignores visibility: every active contract is scanned no
// matter who will eventually read the alert.
func (s *ContractService) ListActiveContracts() ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.db.Where("status = ?", models.ContractActive).Find(&contracts).Error
	return contracts, err
}

// sortable columns for List; anything else falls back to created_at.
var contractSortColumns = map[string]bool{
	"cost_amount":  true,
	"end_date":     true,
	"title":        true,
	"partner_name": true,
	"created_at":   true,
}

func (s *ContractService) List(v Viewer, search, sort, order string) ([]models.Contract, error) {
	q := ScopeContracts(s.db.Model(&models.Contract{}), v)

	if search != "" {
		term := "%" + search + "%"
		q = q.Where("title LIKE ? OR partner_name LIKE ? OR responsible_person LIKE ?", term, term, term)
	}

	if !contractSortColumns[sort] {
		sort = "created_at"
	}
	dir := "DESC"
	if order == "asc" {
		dir = "ASC"
	}

	var contracts []models.Contract
	err := q.Order(sort + " " + dir).Find(&contracts).Error
	return contracts, err
}

func (s *ContractService) Get(id uint, v Viewer) (*models.Contract, error) {
	var contract models.Contract
	err := ScopeContracts(s.db, v).First(&contract, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (s *ContractService) Create(contract *models.Contract) error {
	return s.db.Create(contract).Error
}

func (s *ContractService) Update(contract *models.Contract) error {
	return s.db.Save(contract).Error
}

// Delete removes a contract with its dependents. Alerts cascade here so
// no orphaned unread alert can keep blocking a future pair.
func (s *ContractService) Delete(id uint, v Viewer) error {
	if _, err := s.Get(id, v); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", id).Delete(&models.Alert{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contract_id = ?", id).Delete(&models.AuditLog{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Contract{}, id).Error
	})
}

// ExportCSV renders the viewer's contracts as a spreadsheet download.
func (s *ContractService) ExportCSV(v Viewer) ([]byte, error) {
	contracts, err := s.List(v, "", "created_at", "desc")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Title", "Partner", "Category", "StartDate", "EndDate", "Cost", "Currency", "Status", "Responsible"})
	for _, c := range contracts {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Title,
			c.PartnerName,
			c.Category,
			formatDate(c.StartDate),
			formatDate(c.EndDate),
			strconv.FormatFloat(c.CostAmount, 'f', 2, 64),
			c.CostCurrency,
			string(c.Status),
			c.ResponsiblePerson,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// DashboardStats is the landing-page summary, visibility-scoped like
// every other read.
type DashboardStats struct {
	TotalContracts  int64   `json:"totalContracts"`
	ActiveContracts int64   `json:"activeContracts"`
	ExpiringSoon    int64   `json:"expiringSoon"`
	UnreadAlerts    int64   `json:"unreadAlerts"`
	MonthlyCost     float64 `json:"monthlyCost"`
}

func (s *ContractService) Stats(v Viewer, alerts *AlertService, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := ScopeContracts(s.db.Model(&models.Contract{}), v).Count(&stats.TotalContracts).Error; err != nil {
		return nil, err
	}

	active := func() *gorm.DB {
		return ScopeContracts(s.db.Model(&models.Contract{}), v).
			Where("status = ?", models.ContractActive)
	}
	if err := active().Count(&stats.ActiveContracts).Error; err != nil {
		return nil, err
	}

	today := dateOnly(now)
	horizon := today.AddDate(0, 0, ExpiryWindowDays)
	if err := active().
		Where("end_date > ? AND end_date <= ?", today, horizon).
		Count(&stats.ExpiringSoon).Error; err != nil {
		return nil, err
	}

	var cost struct{ Total float64 }
	if err := active().Select("COALESCE(SUM(cost_amount), 0) AS total").Scan(&cost).Error; err != nil {
		return nil, err
	}
	stats.MonthlyCost = cost.Total

	unread, err := alerts.UnreadCountForViewer(v)
	if err != nil {
		return nil, err
	}
	stats.UnreadAlerts = unread

	return stats, nil
}
