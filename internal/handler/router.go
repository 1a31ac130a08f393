package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/lernplan-api/internal/middleware"
	"github.com/noah-isme/lernplan-api/internal/service"
	"github.com/noah-isme/lernplan-api/pkg/config"
	"github.com/noah-isme/lernplan-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lernplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lernplan-api/pkg/middleware/requestid"
)

// RouterConfig wires handlers and cross-cutting dependencies into the engine.
type RouterConfig struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *service.MetricsService

	Plans     *PlanHandler
	Slots     *SlotHandler
	Contents  *ContentHandler
	Sessions  *SessionHandler
	Rules     *RuleHandler
	Migration *MigrationHandler
	Export    *ExportHandler
	Health    *MetricsHandler
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(corsmiddleware.New(cfg.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", cfg.Health.Health)
	r.GET("/ready", cfg.Health.Ready)
	if cfg.Config.Metrics.Enabled {
		r.GET("/metrics", cfg.Health.Prometheus)
	}
	if cfg.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.Config.APIPrefix)
	api.Use(logger.GinMiddleware(cfg.Logger))
	api.Use(middleware.JWT(cfg.Config.Auth))

	api.GET("/stats", cfg.Health.Stats)

	plan := api.Group("/plans/:planId")
	{
		plan.GET("", cfg.Plans.Get)
		plan.PUT("", cfg.Plans.Update)
		plan.POST("/wizard/complete", cfg.Slots.CompleteWizard)

		plan.GET("/slots", cfg.Slots.List)
		plan.PUT("/slots", cfg.Slots.BulkReplace)
		plan.POST("/slots", cfg.Slots.Upsert)
		plan.POST("/slots/assign", cfg.Slots.Assign)
		plan.POST("/slots/swap", cfg.Slots.Swap)

		plan.GET("/contents", cfg.Contents.List)
		plan.POST("/contents", cfg.Contents.Save)
		plan.GET("/contents/:contentId", cfg.Contents.Get)
		plan.DELETE("/contents/:contentId", cfg.Contents.Delete)

		plan.GET("/sessions", cfg.Sessions.List)

		plan.GET("/rules/violations", cfg.Rules.Violations)
		plan.POST("/rules/redistribute", cfg.Rules.Redistribute)
		plan.POST("/rules/validate-swap", cfg.Rules.ValidateSwap)

		plan.POST("/migrate", cfg.Migration.Migrate)
		plan.GET("/export", cfg.Export.Export)
	}

	return r
}
