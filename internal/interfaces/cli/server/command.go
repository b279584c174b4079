package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/namuve/frontdesk/internal/infrastructure/config"
	"github.com/namuve/frontdesk/internal/infrastructure/recordstore"
	"github.com/namuve/frontdesk/internal/infrastructure/schema"
	httpRouter "github.com/namuve/frontdesk/internal/interfaces/http"
	"github.com/namuve/frontdesk/internal/shared/biztime"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/metrics"
)

const shutdownTimeout = 30 * time.Second

var (
	env       string
	configDir string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Frontdesk HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configDir, "config", "c", "", "Directory containing config.yaml")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	var dirs []string
	if configDir != "" {
		dirs = append(dirs, configDir)
	}
	cfg, err := config.Load(env, dirs...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	registry, err := schema.Load(cfg.Schema.Path)
	if err != nil {
		return fmt.Errorf("failed to load schema registry: %w", err)
	}

	log.Infow("starting server",
		"environment", env,
		"store", cfg.Store.BaseURL,
		"timezone", cfg.Server.Timezone,
		"redis_enabled", cfg.Redis.Enabled,
		"webhook_enabled", cfg.Webhook.URL != "")

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	store := recordstore.NewClient(&cfg.Store, log.Named("recordstore"),
		recordstore.WithMetrics(m),
		recordstore.WithPingTable(registry.Tickets().TableID),
	)

	redisClient := initRedis(cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	container := httpRouter.NewContainer(cfg, httpRouter.Dependencies{
		Store:    store,
		Registry: registry,
		Redis:    redisClient,
		Metrics:  m,
		Gatherer: reg,
	}, log)
	container.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.Engine(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}
	// requests are done; give their audit deliveries the remaining budget
	_ = container.Shutdown(ctx)

	log.Infow("server exited gracefully")
	return nil
}

// initRedis connects when Redis is enabled. An unreachable Redis is logged
// and disables idempotency instead of failing startup.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("redis disabled, idempotency keys and write rate limiting are off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unreachable at startup, requests will proceed without deduplication",
			"error", err,
			"address", cfg.Redis.GetAddr())
	} else {
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
	}
	return client
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
