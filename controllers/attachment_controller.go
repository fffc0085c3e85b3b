package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/mitlacherp/local-contract-manager/config"
	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/services"
	"github.com/mitlacherp/local-contract-manager/utils"

	"github.com/gin-gonic/gin"
)

type AttachmentController struct {
	Contracts *services.ContractService
	Audit     *services.AuditService
}

func NewAttachmentController(contracts *services.ContractService, audit *services.AuditService) *AttachmentController {
	return &AttachmentController{Contracts: contracts, Audit: audit}
}

// POST /contracts/:id/upload
func (ctl *AttachmentController) Upload(c *gin.Context) {
	id, err := contractID(c)
	if err != nil {
		return
	}
	if _, err := ctl.Contracts.Get(id, viewerFrom(c)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	key, err := utils.UploadAttachment(data, contentType, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	attachment := models.Attachment{
		ContractID:   id,
		StorageKey:   key,
		OriginalName: fileHeader.Filename,
		MimeType:     contentType,
		Size:         fileHeader.Size,
	}
	if err := config.DB.Create(&attachment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl.Audit.Log(id, c.GetUint("userID"), userNameFrom(c), "UPLOAD", "Uploaded "+fileHeader.Filename)
	c.JSON(http.StatusOK, gin.H{"message": "File uploaded successfully", "id": attachment.ID})
}

// GET /contracts/:id/attachments
func (ctl *AttachmentController) List(c *gin.Context) {
	id, err := contractID(c)
	if err != nil {
		return
	}
	if _, err := ctl.Contracts.Get(id, viewerFrom(c)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	var attachments []models.Attachment
	if err := config.DB.Where("contract_id = ?", id).Find(&attachments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, attachments)
}

// GET /attachments/:id/download — redirects to a presigned S3 URL.
func (ctl *AttachmentController) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attachment id"})
		return
	}

	var attachment models.Attachment
	if err := config.DB.First(&attachment, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	if _, err := ctl.Contracts.Get(attachment.ContractID, viewerFrom(c)); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	url, err := utils.PresignDownload(attachment.StorageKey, attachment.OriginalName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
