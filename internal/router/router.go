package router

import (
	"net/http"

	"github.com/dalvguti/family-expenses-be/internal/config"
	"github.com/dalvguti/family-expenses-be/internal/handler"
	"github.com/dalvguti/family-expenses-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	// liveness probe, no auth
	api.GET("/health", func(c *gin.Context) {
		status := "OK"
		httpStatus := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status = "DEGRADED"
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, gin.H{
			"status":   status,
			"message":  "Server is running",
			"database": "PostgreSQL",
		})
	})

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())

	// public auth endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// everything else requires a bearer token
	protected := api.Group("")
	protected.Use(
		middleware.Authenticate(db, jwtSecret),
		middleware.Audit(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.GetMe)
	protected.PUT("/auth/password", authHandler.UpdatePassword)

	transactionHandler := handler.NewTransactionHandler(db)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions/stats", transactionHandler.GetStats)
	protected.GET("/transactions/:id", transactionHandler.GetTransaction)
	protected.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/transactions/export/csv", exportHandler.ExportCSV)
	protected.GET("/transactions/export/xlsx", exportHandler.ExportXLSX)

	categoryHandler := handler.NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.ListCategories)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.GET("/categories/:id", categoryHandler.GetCategory)
	protected.PUT("/categories/:id", categoryHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	protected.PATCH("/categories/:id/toggle", categoryHandler.ToggleCategory)

	reportHandler := handler.NewReportHandler(db)
	protected.GET("/reports/monthly", reportHandler.GetMonthlyReport)
	protected.GET("/reports/yearly", reportHandler.GetYearlyReport)

	// admin-only management
	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())

	userHandler := handler.NewUserHandler(db)
	admin.GET("/users", userHandler.ListUsers)
	admin.PATCH("/users/:id/toggle", userHandler.ToggleUser)

	auditHandler := handler.NewAuditHandler(db)
	admin.GET("/audit", auditHandler.ListAuditLogs)

	return r
}
