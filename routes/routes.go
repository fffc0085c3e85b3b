package routes

import (
	"github.com/mitlacherp/local-contract-manager/controllers"
	"github.com/mitlacherp/local-contract-manager/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Contracts   *controllers.ContractController
	Alerts      *controllers.AlertController
	Dashboard   *controllers.DashboardController
	Attachments *controllers.AttachmentController
	Audit       *controllers.AuditController
	Scan        *controllers.ScanController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		contracts := api.Group("/contracts")
		{
			contracts.GET("", ctl.Contracts.List)
			contracts.GET("/export/csv", ctl.Contracts.ExportCSV)
			contracts.GET("/:id", ctl.Contracts.Get)
			contracts.POST("", ctl.Contracts.Create)
			contracts.PUT("/:id", ctl.Contracts.Update)
			contracts.DELETE("/:id", ctl.Contracts.Delete)
			contracts.POST("/:id/upload", ctl.Attachments.Upload)
			contracts.GET("/:id/attachments", ctl.Attachments.List)
			contracts.GET("/:id/audit", ctl.Audit.ListForContract)
		}

		api.GET("/attachments/:id/download", ctl.Attachments.Download)

		api.GET("/alerts", ctl.Alerts.List)
		api.PUT("/alerts/:id/read", ctl.Alerts.MarkRead)
		api.GET("/dashboard/stats", ctl.Dashboard.Stats)

		admin := api.Group("/")
		admin.Use(middlewares.AdminOnly())
		{
			admin.GET("/users", controllers.ListUsers)
			admin.POST("/users", controllers.CreateUser)
			admin.DELETE("/users/:id", controllers.DeleteUser)
			admin.GET("/settings", controllers.GetSettings)
			admin.POST("/settings", controllers.UpdateSetting)
			admin.POST("/scan/run", ctl.Scan.Run)
		}
	}

	return r
}
