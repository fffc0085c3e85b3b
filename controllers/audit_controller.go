package controllers

import (
	"net/http"

	"github.com/mitlacherp/local-contract-manager/services"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	Contracts *services.ContractService
	Audit     *services.AuditService
}

func NewAuditController(contracts *services.ContractService, audit *services.AuditService) *AuditController {
	return &AuditController{Contracts: contracts, Audit: audit}
}

// GET /contracts/:id/audit
func (ctl *AuditController) ListForContract(c *gin.Context) {
	id, err := contractID(c)
	if err != nil {
		return
	}
	if _, err := ctl.Contracts.Get(id, viewerFrom(c)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	entries, err := ctl.Audit.ListForContract(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
