package app

import (
	"learnlocal_backend/internal/config"
	"learnlocal_backend/internal/middleware"
	"learnlocal_backend/internal/model"
	"learnlocal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.Use(middleware.RequestID())

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/certificates/verify/:code", c.certificate.Verify)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/modules", c.content.ListModules)
		authGroup.GET("/modules/:id", c.content.GetModule)

		authGroup.POST("/progress", c.learning.RecordOutcome)
		authGroup.GET("/progress/overview", c.learning.GetOverview)
		authGroup.GET("/modules/:id/progress", c.learning.GetModuleProgress)
		authGroup.DELETE("/modules/:id/progress", c.learning.ResetProgress)
		authGroup.GET("/modules/:id/completion", c.learning.GetCompletion)

		authGroup.POST("/modules/:id/certificate", c.certificate.Issue)
		authGroup.GET("/certificates", c.certificate.List)
	}

	// 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/modules", c.content.CreateModule)
		admin.PUT("/modules/:id", c.content.UpdateModule)
		admin.DELETE("/modules/:id", c.content.DeleteModule)
	}
}
