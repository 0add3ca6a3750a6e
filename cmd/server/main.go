package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/donelist/backend/api/handler"
	"github.com/donelist/backend/internal/config"
	"github.com/donelist/backend/internal/infrastructure/monitor"
	pgInfra "github.com/donelist/backend/internal/infrastructure/postgres"
	redisInfra "github.com/donelist/backend/internal/infrastructure/redis"
	"github.com/donelist/backend/internal/middleware"
	"github.com/donelist/backend/internal/router"
	"github.com/donelist/backend/internal/services/lifecycle"
	"github.com/donelist/backend/pkg/httpcontext"
	"github.com/donelist/backend/pkg/logger"
	"github.com/donelist/backend/repository/postgres"
	redisRepo "github.com/donelist/backend/repository/redis"
	"github.com/donelist/backend/usecase"
	todoUC "github.com/donelist/backend/usecase/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	var listCache usecase.ListCache
	redisClient, err := redisInfra.OptionalClient(cfg.Cache)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	if redisClient != nil {
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		listCache = redisRepo.NewTodoCache(redisClient, cfg.Cache.TTL)
		zapLogger.Info("todo list cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	}

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	todoRepo := postgres.NewTodoRepository(pool)
	todoUseCase := todoUC.New(todoRepo, listCache, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Todo:   apiHandler.NewTodoHandler(todoUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	chain := middleware.CORS(cfg.CORS.AllowedOrigins)(
		middleware.AccessLog(zapLogger)(r.Handler),
	)

	server := &fasthttp.Server{
		Handler:      chain,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
