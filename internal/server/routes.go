package server

import (
	"github.com/nulzo/virtual-router-api/internal/server/middleware"
	v1 "github.com/nulzo/virtual-router-api/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)
	s.router.Use(limiter.Middleware())

	healthHandler := v1.NewHealthHandler(s.version)
	s.router.GET("/health", healthHandler.Health)

	api := s.router.Group("/v1")
	api.Use(middleware.Auth(s.config.Server.APIKeys))
	{
		resolveHandler := v1.NewResolveHandler(s.service, s.quota.Checker())
		api.POST("/resolve", resolveHandler.Resolve)

		registryHandler := v1.NewRegistryHandler(s.service)
		api.GET("/virtual-models", registryHandler.List)
		api.POST("/virtual-models", registryHandler.Create)
		api.GET("/virtual-models/:id", registryHandler.Get)
		api.DELETE("/virtual-models/:id", registryHandler.Delete)
		api.PATCH("/virtual-models/:id/name", registryHandler.Rename)
		api.POST("/virtual-models/:id/toggle", registryHandler.Toggle)
		api.PUT("/virtual-models/:id/enabled", registryHandler.SetEnabled)
		api.POST("/virtual-models/:id/entries", registryHandler.AddEntry)
		api.DELETE("/virtual-models/:id/entries/:entryId", registryHandler.RemoveEntry)
		api.POST("/virtual-models/:id/entries/move", registryHandler.MoveEntry)

		stateHandler := v1.NewStateHandler(s.service)
		api.GET("/route-states", stateHandler.List)
		api.DELETE("/route-states", stateHandler.ClearAll)
		api.GET("/route-states/:name", stateHandler.Get)
		api.DELETE("/route-states/:name", stateHandler.Clear)

		configHandler := v1.NewConfigHandler(s.service)
		api.GET("/config/enabled", configHandler.GetEnabled)
		api.PUT("/config/enabled", configHandler.SetEnabled)
		api.GET("/config/export", configHandler.Export)
		api.PUT("/config/import", configHandler.Import)
		api.POST("/config/reset", configHandler.Reset)

		quotaHandler := v1.NewQuotaHandler(s.quota)
		api.GET("/quota/:provider/:model", quotaHandler.Get)
		api.PUT("/quota/:provider/:model", quotaHandler.Set)

		auditHandler := v1.NewAuditHandler(s.repo)
		api.GET("/audit/resolutions", auditHandler.Recent)
		api.GET("/audit/stats", auditHandler.DailyStats)
	}
}
