package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mitlacherp/local-contract-manager/config"
	"github.com/mitlacherp/local-contract-manager/controllers"
	"github.com/mitlacherp/local-contract-manager/routes"
	"github.com/mitlacherp/local-contract-manager/services"
	"github.com/mitlacherp/local-contract-manager/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	contractSvc := services.NewContractService(config.DB)
	alertSvc := services.NewAlertService(config.DB)
	auditSvc := services.NewAuditService(config.DB)

	scanHour := config.GetEnvInt("SCAN_HOUR", 8)
	scanner := services.NewScanner(contractSvc, alertSvc, time.Now, scanHour)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner.Start(ctx)
	}()

	r := routes.SetupRouter(routes.Controllers{
		Contracts:   controllers.NewContractController(contractSvc, auditSvc),
		Alerts:      controllers.NewAlertController(alertSvc),
		Dashboard:   controllers.NewDashboardController(contractSvc, alertSvc),
		Attachments: controllers.NewAttachmentController(contractSvc, auditSvc),
		Audit:       controllers.NewAuditController(contractSvc, auditSvc),
		Scan:        controllers.NewScanController(scanner),
	})

	addr := ":" + config.GetEnv("PORT", "8080")
	srv := &http.Server{Addr: addr, Handler: r}

	// Drain the server once a signal lands; an in-flight scan pass
	// finishes on its own before wg.Wait returns.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	log.Printf("Server running on %s (daily scan at %02d:00)", addr, scanHour)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}

	wg.Wait()
	log.Printf("shutdown complete")
}
