package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/namuve/frontdesk/internal/application/audit"
	"github.com/namuve/frontdesk/internal/domain/record"
	"github.com/namuve/frontdesk/internal/infrastructure/config"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	"github.com/namuve/frontdesk/internal/infrastructure/webhook"
	"github.com/namuve/frontdesk/internal/interfaces/http/middleware"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/metrics"
)

// Dependencies are the infrastructure components built by the server command.
// Redis is optional; nil disables idempotency and write rate limiting.
type Dependencies struct {
	Store    record.Store
	Registry *schema.Registry
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// Container wires use cases and handlers over the injected infrastructure and
// owns the audit fanout, which must be drained on shutdown.
type Container struct {
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface
	deps   Dependencies

	fanout      *audit.Fanout
	ucs         *allUseCases
	hdlrs       *allHandlers
	rateLimiter *middleware.RateLimiter
}

func NewContainer(cfg *config.Config, deps Dependencies, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		cfg:    cfg,
		log:    log,
		deps:   deps,
	}

	sinks := []audit.Sink{audit.NewStoreSink(deps.Store, deps.Registry)}
	notifier := webhook.NewNotifier(&cfg.Webhook, log.Named("webhook"))
	if notifier.Enabled() {
		sinks = append(sinks, notifier)
	} else {
		log.Infow("audit webhook disabled, no url configured")
	}
	c.fanout = audit.NewFanout(&cfg.Audit, log.Named("audit"), deps.Metrics, sinks...)

	if deps.Redis != nil && cfg.Server.WriteRateLimit > 0 {
		c.rateLimiter = middleware.NewRateLimiter(deps.Redis, cfg.Server.WriteRateLimit, time.Minute, log)
	}

	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()
	return c
}

func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown waits for in-flight audit deliveries until ctx expires.
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.fanout.Wait(ctx); err != nil {
		c.log.Warnw("audit deliveries still in flight at shutdown", "error", err)
		return err
	}
	c.log.Infow("audit deliveries drained")
	return nil
}
