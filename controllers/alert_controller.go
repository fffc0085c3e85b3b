package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mitlacherp/local-contract-manager/services"

	"github.com/gin-gonic/gin"
)

type AlertController struct {
	Alerts *services.AlertService
}

func NewAlertController(alerts *services.AlertService) *AlertController {
	return &AlertController{Alerts: alerts}
}

// GET /alerts — visibility-scoped, newest first.
func (ctl *AlertController) List(c *gin.Context) {
	alerts, err := ctl.Alerts.ListForViewer(viewerFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// PUT /alerts/:id/read — the only mutation that resets dedup state.
func (ctl *AlertController) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}

	if err := ctl.Alerts.MarkRead(uint(id), viewerFrom(c)); err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
