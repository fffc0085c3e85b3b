package services

import (
	"github.com/mitlacherp/local-contract-manager/models"

	"gorm.io/gorm"
)

// Viewer is the identity a read API acts on behalf of. It is built once
// from the auth middleware's context values and passed down; no query
// below the controller layer looks at role strings.
type Viewer struct {
	UserID uint
	Role   models.Role
}

func (v Viewer) IsAdmin() bool {
	return v.Role == models.RoleAdmin
}

// ScopeContracts narrows a contracts query to what the viewer may see.
// Admins see everything, everyone else only their own records. The scan
// never uses this: alerts are evaluated and stored for all contracts.
func ScopeContracts(db *gorm.DB, v Viewer) *gorm.DB {
	if v.IsAdmin() {
		return db
	}
	return db.Where("contracts.created_by = ?", v.UserID)
}

// ScopeAlerts applies the same ownership rule to alerts via their parent
// contract.
func ScopeAlerts(db *gorm.DB, v Viewer) *gorm.DB {
	if v.IsAdmin() {
		return db
	}
	return db.Joins("JOIN contracts ON contracts.id = alerts.contract_id").
		Where("contracts.created_by = ?", v.UserID)
}
