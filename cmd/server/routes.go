package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"signals-hub.backend/internal/interfaces/http/handlers"
	"signals-hub.backend/pkg/metrics"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	signalHandler    *handlers.SignalHandler
	placementHandler *handlers.PlacementHandler
	registrarHandler *handlers.RegistrarHandler
	authMiddleware   gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/activate", d.authHandler.Activate)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Signal routes (protected)
		signals := v1.Group("/signals")
		signals.Use(d.authMiddleware)
		{
			signals.GET("", d.signalHandler.ListActive)
			signals.GET("/mine", d.signalHandler.ListMine)
			signals.POST("/spot", d.signalHandler.PublishSpot)
			signals.POST("/futures", d.signalHandler.PublishFutures)
			signals.DELETE("/:id", d.signalHandler.Deactivate)
		}

		// Provider routes (protected)
		providers := v1.Group("/providers")
		providers.Use(d.authMiddleware)
		{
			providers.PUT("/wallet", d.signalHandler.UpdateWallet)
			providers.GET("/:id", d.signalHandler.GetProviderProfile)
		}

		// Placement routes (protected)
		placements := v1.Group("/placements")
		placements.Use(d.authMiddleware)
		{
			placements.POST("", d.placementHandler.Place)
			placements.GET("", d.placementHandler.List)
			placements.PUT("/:id/rating", d.placementHandler.Rate)
		}

		// Registrar routes (protected; role is enforced in the usecase)
		registrar := v1.Group("/registrar")
		registrar.Use(d.authMiddleware)
		{
			registrar.POST("/providers", d.registrarHandler.GrantProvider)
			registrar.POST("/registrars", d.registrarHandler.GrantRegistrar)
			registrar.POST("/drop", d.registrarHandler.DropRole)
			registrar.GET("/users", d.registrarHandler.ListUsers)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-ID, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, sqlDB *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "up"
		if sqlDB == nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": dbStatus,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
