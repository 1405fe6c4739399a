package router

import (
	"context"
	"net/http"
	"time"

	"backoffice-service/internal/handlers"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

func Router(svc service.Backoffice, db Pinger, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			log.Warn("readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	h := handlers.NewBackofficeHandler(svc, log)

	api := r.Group("/api/v1")
	{
		api.GET("/tables", h.ListTableNames)
		api.GET("/tables/:name", h.ListTable)

		api.POST("/customers", h.CreateCustomer)
		api.DELETE("/customers/:id", h.DeleteCustomer)

		api.POST("/products", h.CreateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
		api.POST("/products/:id/categories", h.AssignCategory)

		api.POST("/categories", h.CreateCategory)

		api.POST("/orders", h.PlaceOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		api.DELETE("/orders/:id", h.DeleteOrder)

		api.GET("/analytics/dashboard", h.Dashboard)
	}

	return r
}
