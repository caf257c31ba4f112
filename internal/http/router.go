package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "angkot/internal/config"
	h "angkot/internal/http/handlers"
	"angkot/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret([]byte(env.JWTSecret))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		admin := api.Group("")
		admin.Use(middleware.RequireAuth([]byte(env.JWTSecret)))

		drivers := admin.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.POST("", h.CreateDriver)

		passengers := admin.Group("/passengers")
		passengers.GET("", h.GetPassengers)
		passengers.POST("", h.CreatePassenger)

		reports := admin.Group("/reports")
		reports.GET("/daily", h.GetDailyReport)
		reports.GET("/daily/pdf", h.GetDailyReportPDF)

		admin.GET("/exports/legs.csv", h.GetLegsCSV)
	}

	return r
}
