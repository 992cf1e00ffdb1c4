package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"datatable-backend/internal/admin"
	"datatable-backend/internal/auth"
	"datatable-backend/internal/cache"
	"datatable-backend/internal/config"
	"datatable-backend/internal/descriptor"
	"datatable-backend/internal/engine"
	"datatable-backend/internal/entities"
	"datatable-backend/internal/i18n"
	"datatable-backend/internal/instrument"
	"datatable-backend/internal/logging"
	"datatable-backend/internal/models"
	"datatable-backend/internal/permission"
	"datatable-backend/internal/state"
	"datatable-backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load catalogs and build descriptors
	cat, err := models.Load(cfg.Models.Path)
	if err != nil {
		logger.Fatal("Failed to load models", zap.Error(err))
	}
	locales, err := i18n.LoadDir(cfg.I18n.Dir, cfg.I18n.DefaultLocale)
	if err != nil {
		logger.Fatal("Failed to load locales", zap.Error(err))
	}
	reg := descriptor.NewRegistry()
	bundles := entities.All()
	reg.Load(bundles)

	// Lint findings are logged, never fatal.
	metrics := instrument.NewMetrics("datatable")
	admin.Report(logger, metrics, reg.Len(), descriptor.Lint(bundles, cat, locales))

	// 3. Connect to database and bootstrap tables
	db, err := store.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Bootstrap(ctx, cat); err != nil {
		logger.Fatal("Failed to bootstrap tables", zap.Error(err))
	}
	if cfg.Permissions.Sync {
		keys := append(descriptor.PermissionKeys(bundles), adminKey.String())
		n, err := db.SyncPermissions(ctx, keys)
		if err != nil {
			logger.Fatal("Failed to sync permissions", zap.Error(err))
		}
		logger.Info("Permissions synced", zap.Int("keys", len(keys)), zap.Int64("added", n))
	}

	// 4. Cache, permission resolution and table state
	kv, closeCache, err := newCache(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer closeCache()
	resolver := auth.NewCachedResolver(store.NewPermissionResolver(db, cfg.Permissions.SuperRole), kv, cfg.Permissions.CacheTTL)
	states := state.NewStore(kv, cfg.State.TTL)

	// 5. Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(logger),
	})
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(instrument.Middleware(metrics, logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "entities": reg.Len()})
	})
	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, metrics.Handler())
	}

	// 6. Routes (all authenticated)
	authMW := auth.AuthMiddleware(cfg.JWTSecret, resolver)

	adminHandler := admin.NewHandler(reg, cat, locales, admin.Source{
		ModelsPath:    cfg.Models.Path,
		LocalesDir:    cfg.I18n.Dir,
		DefaultLocale: cfg.I18n.DefaultLocale,
		Build:         entities.All,

		Schema:           db,
		SyncPermissions:  cfg.Permissions.Sync,
		ExtraPermissions: []string{adminKey.String()},
		Grants:           resolver,
	}, metrics, logger)
	admin.RegisterAdminRoutes(app, adminHandler, authMW, auth.RequirePermission(adminKey))

	auth.RegisterAuthRoutes(app, auth.NewAuthHandler(states, resolver), authMW)

	engineHandler := engine.NewHandler(reg, locales, states, store.NewAggregator(db, cat), logger)
	engine.RegisterRoutes(app, engineHandler, authMW)

	// 7. Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()
	logger.Info("Starting server", zap.String("addr", addr), zap.String("db", db.Dialect.Name()))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

var adminKey = permission.Key{Action: permission.Access, Resource: permission.ResourceAdmin}

func newCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, func(), error) {
	if !cfg.Enabled {
		return cache.NewMemory(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}
	return cache.NewRedis(client, cfg.Prefix), func() { client.Close() }, nil
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var appErr *engine.AppError
		if errors.As(err, &appErr) {
			return c.Status(appErr.Status).JSON(engine.ErrorResponse{Error: appErr})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			return c.Status(code).JSON(engine.ErrorResponse{
				Error: &engine.AppError{Code: "HTTP_ERROR", Message: fiberErr.Message},
			})
		}

		instrument.Logger(c.UserContext()).Error("Unhandled error", zap.Error(err))
		return c.Status(code).JSON(engine.ErrorResponse{
			Error: &engine.AppError{
				Code:    "INTERNAL_ERROR",
				Message: "Internal server error",
			},
		})
	}
}
