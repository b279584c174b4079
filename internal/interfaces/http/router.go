package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/namuve/frontdesk/internal/interfaces/http/middleware"
	"github.com/namuve/frontdesk/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Actor())
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.Metrics(c.deps.Metrics))

	c.engine.GET("/health", c.hdlrs.health.Health)
	c.engine.GET("/ready", c.hdlrs.health.Ready)
	if c.deps.Gatherer != nil {
		c.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := c.engine.Group("/api")

	var writeLimit gin.HandlerFunc
	if c.rateLimiter != nil {
		writeLimit = c.rateLimiter.Limit()
	}
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler: c.hdlrs.ticket,
		WriteLimit:    writeLimit,
	})
	routes.SetupLinkedRecordRoutes(api, &routes.LinkedRecordRouteConfig{
		LinkedRecordHandler: c.hdlrs.linkedRecord,
	})
	routes.SetupActivityRoutes(api, &routes.ActivityRouteConfig{
		ActivityHandler: c.hdlrs.activity,
	})
	routes.SetupCatalogRoutes(api, &routes.CatalogRouteConfig{
		CatalogHandler: c.hdlrs.catalog,
	})
}
