package handler

import (
	"time"

	"github.com/Dibbotcf/Legacyscript/config"
	"github.com/Dibbotcf/Legacyscript/middleware"
	"github.com/Dibbotcf/Legacyscript/service"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route under cfg.Server.BasePath.
func NewRouter(cfg *config.Config, svc *service.Service) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	healthHandler := NewHealthHandler(svc)
	authHandler := NewAuthHandler(cfg)
	submissionHandler := NewSubmissionHandler(svc)
	invoiceHandler := NewInvoiceHandler(svc, cfg.Share.FrontendOrigin)

	api := router.Group(cfg.Server.BasePath)
	api.Use(middleware.NoCache())
	api.Use(middleware.RateLimit(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second))

	api.GET("/health", healthHandler.Health)

	// Reachable with the public site key
	public := api.Group("")
	public.Use(middleware.PublicAuth(&cfg.Auth))
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/submissions", submissionHandler.Create)
		public.GET("/invoices/shared/:shareId", invoiceHandler.GetShared)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminAuth(&cfg.Auth))
	{
		admin.GET("/auth/me", authHandler.GetCurrentUser)
		admin.GET("/db-health", healthHandler.DBHealth)

		admin.GET("/submissions", submissionHandler.List)
		admin.DELETE("/submissions/:id", submissionHandler.Delete)

		admin.GET("/invoices", invoiceHandler.List)
		admin.POST("/invoices", invoiceHandler.Create)
		admin.PUT("/invoices/:id", invoiceHandler.Update)
		admin.DELETE("/invoices/:id", invoiceHandler.Delete)
		admin.POST("/invoices/:id/share", invoiceHandler.Share)
	}

	return router
}
