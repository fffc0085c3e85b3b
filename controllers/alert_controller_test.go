package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAlertRouter(t *testing.T, userID uint, role models.Role) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Contract{}, &models.Alert{}))

	ctl := NewAlertController(services.NewAlertService(db))

	r := gin.New()
	r.Use(func(c *gin.Context) { // stands in for the JWT middleware
		c.Set("userID", userID)
		c.Set("role", role)
	})
	r.GET("/alerts", ctl.List)
	r.PUT("/alerts/:id/read", ctl.MarkRead)
	return r, db
}

func seedAlert(t *testing.T, db *gorm.DB, owner uint, message string) models.Alert {
	t.Helper()
	end := time.Now().AddDate(0, 0, 30)
	contract := models.Contract{Title: "Lease", EndDate: &end, Status: models.ContractActive, CreatedBy: owner}
	require.NoError(t, db.Create(&contract).Error)

	alert := models.Alert{ContractID: contract.ID, AlertType: models.AlertExpiry, Message: message}
	require.NoError(t, db.Create(&alert).Error)
	return alert
}

func TestListAlertsScopedByRole(t *testing.T) {
	r, db := setupAlertRouter(t, 10, models.RoleEmployee)
	seedAlert(t, db, 10, "mine")
	seedAlert(t, db, 20, "not mine")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Alert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Message)
}

func TestMarkReadEndpoint(t *testing.T) {
	r, db := setupAlertRouter(t, 10, models.RoleEmployee)
	alert := seedAlert(t, db, 10, "mine")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/alerts/1/read", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Alert
	require.NoError(t, db.First(&updated, alert.ID).Error)
	assert.True(t, updated.IsRead)
}

func TestMarkReadForeignAlertIs404(t *testing.T) {
	r, db := setupAlertRouter(t, 10, models.RoleEmployee)
	seedAlert(t, db, 20, "not mine")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/alerts/1/read", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
