package controllers

import (
	"net/http"
	"time"

	"github.com/mitlacherp/local-contract-manager/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Contracts *services.ContractService
	Alerts    *services.AlertService
}

func NewDashboardController(contracts *services.ContractService, alerts *services.AlertService) *DashboardController {
	return &DashboardController{Contracts: contracts, Alerts: alerts}
}

func (ctl *DashboardController) Stats(c *gin.Context) {
	stats, err := ctl.Contracts.Stats(viewerFrom(c), ctl.Alerts, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
