package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/services"

	"github.com/gin-gonic/gin"
)

type ContractController struct {
	Contracts *services.ContractService
	Audit     *services.AuditService
}

func NewContractController(contracts *services.ContractService, audit *services.AuditService) *ContractController {
	return &ContractController{Contracts: contracts, Audit: audit}
}

type ContractInput struct {
	Title             string  `json:"title" binding:"required"`
	PartnerName       string  `json:"partner_name" binding:"required"`
	Category          string  `json:"category"`
	StartDate         string  `json:"start_date"` // YYYY-MM-DD
	EndDate           string  `json:"end_date"`   // YYYY-MM-DD, optional
	NoticePeriodDays  int     `json:"notice_period_days"`
	AutoRenewal       bool    `json:"auto_renewal"`
	CostAmount        float64 `json:"cost_amount"`
	CostCurrency      string  `json:"cost_currency"`
	ResponsiblePerson string  `json:"responsible_person"`
	ResponsibleEmail  string  `json:"responsible_email"`
	Status            string  `json:"status"`
}

// apply validates the input and copies it onto a contract record. Bad
// dates are rejected here so the scan only ever sees typed values.
func (in *ContractInput) apply(contract *models.Contract) error {
	if in.NoticePeriodDays < 0 {
		return errors.New("notice_period_days must not be negative")
	}

	start, err := parseOptionalDate(in.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date: %v", err)
	}
	end, err := parseOptionalDate(in.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date: %v", err)
	}

	status := models.ContractStatus(in.Status)
	if in.Status == "" {
		status = models.ContractActive
	}
	switch status {
	case models.ContractActive, models.ContractDraft, models.ContractTerminated, models.ContractExpired:
	default:
		return fmt.Errorf("unknown status %q", in.Status)
	}

	contract.Title = in.Title
	contract.PartnerName = in.PartnerName
	contract.Category = in.Category
	contract.StartDate = start
	contract.EndDate = end
	contract.NoticePeriodDays = in.NoticePeriodDays
	contract.AutoRenewal = in.AutoRenewal
	contract.CostAmount = in.CostAmount
	contract.CostCurrency = in.CostCurrency
	contract.ResponsiblePerson = in.ResponsiblePerson
	contract.ResponsibleEmail = in.ResponsibleEmail
	contract.Status = status
	return nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (ctl *ContractController) List(c *gin.Context) {
	contracts, err := ctl.Contracts.List(viewerFrom(c),
		c.Query("search"), c.Query("sort"), c.Query("order"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (ctl *ContractController) Get(c *gin.Context) {
	id, err := contractID(c)
	if err != nil {
		return
	}

	contract, err := ctl.Contracts.Get(id, viewerFrom(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found or access denied"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (ctl *ContractController) Create(c *gin.Context) {
	var input ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract := models.Contract{CreatedBy: c.GetUint("userID")}
	if err := input.apply(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.Contracts.Create(&contract); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl.Audit.Log(contract.ID, c.GetUint("userID"), userNameFrom(c), "CREATE",
		fmt.Sprintf("Created contract %q", contract.Title))
	c.JSON(http.StatusCreated, gin.H{"id": contract.ID, "message": "Contract created successfully"})
}

func (ctl *ContractController) Update(c *gin.Context) {
	id, err := contractID(c)
	if err != nil {
		return
	}

	contract, err := ctl.Contracts.Get(id, viewerFrom(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this contract"})
		return
	}

	var input ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.apply(contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.Contracts.Update(contract); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl.Audit.Log(contract.ID, c.GetUint("userID"), userNameFrom(c), "UPDATE", "Updated contract details")
	c.JSON(http.StatusOK, gin.H{"message": "Contract updated successfully"})
}

func (ctl *ContractController) Delete(c *gin.Context) {
	id, err := contractID(c)
	if err != nil {
		return
	}

	contract, err := ctl.Contracts.Get(id, viewerFrom(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := ctl.Contracts.Delete(id, viewerFrom(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl.Audit.Log(id, c.GetUint("userID"), userNameFrom(c), "DELETE",
		fmt.Sprintf("Deleted contract %q", contract.Title))
	c.JSON(http.StatusOK, gin.H{"message": "Contract deleted"})
}

func (ctl *ContractController) ExportCSV(c *gin.Context) {
	data, err := ctl.Contracts.ExportCSV(viewerFrom(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contracts_export.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func contractID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return 0, err
	}
	return uint(id), nil
}
