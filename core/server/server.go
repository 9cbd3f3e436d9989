package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"trainhub-api/core/cache"
	"trainhub-api/core/config"
	"trainhub-api/core/constants"
	"trainhub-api/core/controller"
	"trainhub-api/core/database"
	"trainhub-api/core/logger"
	"trainhub-api/core/middleware"
	"trainhub-api/core/queue"
	"trainhub-api/core/storage"
	"trainhub-api/modules/auth"
	"trainhub-api/modules/notification"
	"trainhub-api/modules/org"
	"trainhub-api/modules/report"
	"trainhub-api/modules/schedule"
	"trainhub-api/modules/training"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

// Run wires every module, then serves HTTP and the export worker until the
// process receives SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := newCache(cfg.Redis)
	if err != nil {
		return err
	}
	defer store.Close()

	mw := middleware.NewMiddleware(store)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORS())
	e.Use(middleware.RequestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	var (
		enqueuer queue.Enqueuer
		client   *queue.Client
	)
	if cfg.Queue.Enabled {
		client = queue.NewClient(cfg.Redis)
		defer client.Close()
		enqueuer = client
	}

	api := e.Group("/api/v1")
	api.RouteNotFound("/*", controller.RouteNotFound)
	auth.Init(api, &db, store, mw)
	notifSvc := notification.Init(api, &db, mw)
	scheduleSvc := schedule.Init(api, &db, mw, notifSvc)
	org.Init(api, &db, mw)
	training.Init(api, &db, mw, scheduleSvc)
	reportSvc := report.Init(api, &db, mw, enqueuer, storage.NewS3Storage(cfg.Storage), notifSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Queue.Enabled {
		worker := queue.NewWorker(cfg.Redis, cfg.Queue)
		worker.Handle(constants.TaskReportExport, reportSvc.HandleExportTask)
		if err := worker.Start(); err != nil {
			return fmt.Errorf("start worker: %w", err)
		}
		logger.Info("Export worker started", "concurrency", cfg.Queue.Concurrency)
		g.Go(func() error {
			<-ctx.Done()
			worker.Shutdown()
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newCache uses redis when an address is configured and falls back to the
// in-process cache otherwise.
func newCache(cfg config.RedisConfig) (cache.Cache, error) {
	if cfg.Addr == "" {
		logger.Warn("Redis address not set, using in-memory cache")
		return cache.NewMemoryCache(), nil
	}
	c, err := cache.NewRedisCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return c, nil
}
