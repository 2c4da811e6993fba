package api

import (
	"net/http"
	"time"

	"item-store/internal/service"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the item routes, access logging, panic recovery and
// /metrics onto a fresh gin engine.
func NewRouter(items *service.ItemService, metrics *Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Add a ginzap middleware, which:
	//   - Logs all requests, like a combined access and error log.
	//   - RFC3339 with UTC time format.
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))

	// Logs all panic to error log
	//   - stack means whether output the stack info.
	router.Use(ginzap.RecoveryWithZap(logger, true))

	if metrics != nil {
		router.Use(metrics.middleware())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "online")
	})

	h := &itemHandlers{items: items}
	group := router.Group("/items")
	{
		group.POST("/", h.create)
		group.GET("/:id", h.read)
		group.PUT("/:id", h.update)
		group.DELETE("/:id", h.delete)
	}

	return router
}
