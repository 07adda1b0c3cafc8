package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/predictor-service/handlers"
	"github.com/Bipul-Dubey/health-index/predictor-service/templates"
	"github.com/Bipul-Dubey/health-index/shared/middleware"
)

type Options struct {
	// AllowedOrigins may call the JSON API from a browser. Empty disables CORS.
	AllowedOrigins []string
}

func SetupRoutes(hm *handlers.HandlerManager, sessions middleware.SessionResolver, opts Options) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(templates.Parse())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.LoadSession(sessions))

	r.GET("/", hm.PageHandler.Index)
	r.POST("/login", hm.PageHandler.Login)
	r.POST("/predict", hm.PageHandler.Predict)
	r.POST("/logout", hm.PageHandler.Logout)
	r.GET("/assets/health.jpg", hm.PageHandler.Image)
	r.GET("/chart.png", middleware.RequireSession(), hm.DatasetHandler.Chart)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "predictor",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/login", hm.AuthenticationHandler.Login)
		api.POST("/logout", hm.AuthenticationHandler.Logout)

		auth := api.Group("")
		auth.Use(middleware.RequireSession())
		{
			auth.GET("/models", hm.PredictHandler.Models)
			auth.GET("/features", hm.DatasetHandler.Features)
			auth.GET("/dataset", hm.DatasetHandler.Dataset)
			auth.POST("/predict", hm.PredictHandler.Predict)
			auth.GET("/predictions", hm.PredictHandler.History)
		}
	}

	return r
}
