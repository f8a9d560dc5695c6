package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finpress-backend/internal/shared/middleware"
	"finpress-backend/internal/shared/response"
	"finpress-backend/pkg/container"
)

// SetupRouter wires middleware and all API routes. Read endpoints are
// public; writes require authentication and editorial transitions require a
// publishing role.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	router.GET("/health", healthHandler(c))

	v1 := router.Group("/api/v1")

	setupAuthRoutes(v1, c)
	setupNewsRoutes(v1, c)
	setupAnalysisRoutes(v1, c)
	setupCategoryRoutes(v1, c)
	setupTagRoutes(v1, c)
	setupUploadRoutes(v1, c)

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.AuthHandler.Register)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/refresh", c.AuthHandler.Refresh)
	}

	me := v1.Group("/auth")
	me.Use(middleware.Auth(c.JWTManager))
	{
		me.GET("/me", c.AuthHandler.Me)
		me.PATCH("/me", c.AuthHandler.UpdateProfile)
		me.PUT("/password", c.AuthHandler.ChangePassword)
	}
}

func setupNewsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/news")
	{
		public.GET("", c.NewsHandler.List)
		public.GET("/featured", c.NewsHandler.GetFeatured)
		public.GET("/:slug", c.NewsHandler.GetBySlug)
	}

	authed := v1.Group("/news")
	authed.Use(middleware.Auth(c.JWTManager))
	{
		authed.POST("", c.NewsHandler.Create)
		authed.PATCH("/:id", c.NewsHandler.Update)
		authed.DELETE("/:id", c.NewsHandler.Delete)
		authed.POST("/:id/submit", c.NewsHandler.SubmitForReview)
	}

	editorial := v1.Group("/news")
	editorial.Use(middleware.Auth(c.JWTManager), middleware.RequireRole("ADMIN", "EDITOR"))
	{
		editorial.POST("/:id/publish", c.NewsHandler.Publish)
		editorial.POST("/:id/unpublish", c.NewsHandler.Unpublish)
		editorial.POST("/:id/archive", c.NewsHandler.Archive)
		editorial.POST("/:id/feature", c.NewsHandler.Feature)
		editorial.POST("/:id/unfeature", c.NewsHandler.Unfeature)
	}
}

func setupAnalysisRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/analysis")
	{
		public.GET("", c.AnalysisHandler.List)
		public.GET("/featured", c.AnalysisHandler.GetFeatured)
		public.GET("/stock/:ticker", c.AnalysisHandler.GetLatestByTicker)
		public.GET("/:slug", c.AnalysisHandler.GetBySlug)
	}

	authed := v1.Group("/analysis")
	authed.Use(middleware.Auth(c.JWTManager))
	{
		authed.POST("", c.AnalysisHandler.Create)
		authed.PATCH("/:id", c.AnalysisHandler.Update)
		authed.DELETE("/:id", c.AnalysisHandler.Delete)
		authed.POST("/:id/submit", c.AnalysisHandler.SubmitForReview)
	}

	editorial := v1.Group("/analysis")
	editorial.Use(middleware.Auth(c.JWTManager), middleware.RequireRole("ADMIN", "EDITOR"))
	{
		editorial.POST("/:id/publish", c.AnalysisHandler.Publish)
		editorial.POST("/:id/feature", c.AnalysisHandler.Feature)
		editorial.POST("/:id/unfeature", c.AnalysisHandler.Unfeature)
	}
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/categories")
	{
		public.GET("", c.CategoryHandler.List)
		public.GET("/:slug", c.CategoryHandler.GetBySlug)
	}

	admin := v1.Group("/categories")
	admin.Use(middleware.Auth(c.JWTManager), middleware.RequireRole("ADMIN", "EDITOR"))
	{
		admin.POST("", c.CategoryHandler.Create)
		admin.PATCH("/:id", c.CategoryHandler.Update)
		admin.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	public := v1.Group("/tags")
	{
		public.GET("", c.TagHandler.List)
		public.GET("/popular", c.TagHandler.GetPopular)
		public.GET("/:slug", c.TagHandler.GetBySlug)
	}

	authed := v1.Group("/tags")
	authed.Use(middleware.Auth(c.JWTManager))
	{
		authed.POST("", c.TagHandler.Create)
	}

	admin := v1.Group("/tags")
	admin.Use(middleware.Auth(c.JWTManager), middleware.RequireRole("ADMIN"))
	{
		admin.DELETE("/:id", c.TagHandler.Delete)
	}
}

func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	uploads := v1.Group("/uploads")
	uploads.Use(middleware.Auth(c.JWTManager))
	{
		uploads.POST("/images", c.UploadHandler.UploadImage)
		uploads.DELETE("/images", c.UploadHandler.DeleteImage)
	}
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := ctxWithTimeout(ctx)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(checkCtx); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		if status != http.StatusOK {
			response.ErrorResponse(ctx, status, "UNHEALTHY", "One or more dependencies are down")
			return
		}
		response.Success(ctx, status, gin.H{
			"status": "ok",
			"checks": checks,
		})
	}
}

func ctxWithTimeout(c *gin.Context) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 3*time.Second)
}
