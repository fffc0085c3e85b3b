package controllers

import (
	"net/http"

	"github.com/mitlacherp/local-contract-manager/services"

	"github.com/gin-gonic/gin"
)

type ScanController struct {
	Scanner *services.Scanner
}

func NewScanController(scanner *services.Scanner) *ScanController {
	return &ScanController{Scanner: scanner}
}

// POST /scan/run — operational re-entry of the daily pass. Shares the
// scanner's no-overlap guard, so a run during the scheduled pass is
// reported as coalesced instead of queued.
func (ctl *ScanController) Run(c *gin.Context) {
	summary, ran := ctl.Scanner.RunScan()
	if !ran {
		c.JSON(http.StatusConflict, gin.H{"error": "scan already in progress"})
		return
	}
	if summary.SnapshotFailed {
		c.JSON(http.StatusBadGateway, gin.H{"error": "scan abandoned: could not fetch contracts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scanned": summary.Scanned,
		"emitted": summary.Emitted,
		"skipped": summary.Skipped,
		"errors":  summary.Errors,
	})
}
