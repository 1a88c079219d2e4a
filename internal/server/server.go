package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/config"
	"github.com/nulzo/virtual-router-api/internal/core/services"
	"github.com/nulzo/virtual-router-api/internal/quota"
	"github.com/nulzo/virtual-router-api/internal/server/middleware"
	"github.com/nulzo/virtual-router-api/internal/store"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  *zap.Logger
	service *services.FallbackService
	quota   *quota.Table
	repo    store.Repository
	version string
}

// New assembles the HTTP surface. repo may be nil when auditing is disabled.
func New(cfg *config.Config, logger *zap.Logger, service *services.FallbackService, table *quota.Table, repo store.Repository, version string) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger))
	if cfg.Tracing.Enabled {
		engine.Use(otelgin.Middleware("virtual-router-api"))
	}

	s := &Server{
		router:  engine,
		config:  cfg,
		logger:  logger,
		service: service,
		quota:   table,
		repo:    repo,
		version: version,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
