package handlers

import (
	"time"

	"frontend-gin/internal/session"
	"frontend-gin/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine serving every page, the embedded assets and
// the JSON endpoints under /api.
func SetupRouter(h *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), h.sessions.Middleware())
	r.HTMLRender = h.renderer

	r.StaticFS("/static", web.Static())
	r.GET("/healthz", Healthz)

	r.GET("/", h.Home)
	r.GET("/auth", h.ShowAuth)
	r.POST("/auth/signin", h.SignIn)
	r.POST("/auth/signup", h.SignUp)
	r.POST("/logout", h.Logout)

	r.GET("/dashboard", h.DashboardHome)
	dash := r.Group("/dashboard/:role", session.RequireRole("/auth"))
	{
		dash.GET("", h.ShowDashboard)
		dash.GET("/:service", h.ShowDashboard)
		dash.POST("/:service", h.DashboardAction)
	}

	r.GET("/analyticspage", h.AnalyticsPage)

	api := r.Group("/api", cors.New(corsConfig(corsOrigins)))
	{
		api.GET("/analytics", h.AnalyticsProxy)
		api.GET("/patients", h.GetPatientsWithPage)
		api.GET("/patients/history", h.GetPatientHistory)
	}

	r.NoRoute(h.NotFound)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
