package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/xmarks/internal/archiver"
	"github.com/MrSnakeDoc/xmarks/internal/config"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/redis"
	"github.com/MrSnakeDoc/xmarks/internal/scheduler"
	"github.com/MrSnakeDoc/xmarks/internal/sources/bird"
	"github.com/MrSnakeDoc/xmarks/internal/sources/rules"
	"github.com/MrSnakeDoc/xmarks/internal/storage"
	filestore "github.com/MrSnakeDoc/xmarks/internal/storage/file"
	redisstore "github.com/MrSnakeDoc/xmarks/internal/storage/redis"
	"github.com/MrSnakeDoc/xmarks/internal/syncer"
	"github.com/MrSnakeDoc/xmarks/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	autoSyncer  *scheduler.AutoSyncer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Optional keyword->category classifier. Configured but broken is a
	// startup error: silently ignoring a rules file would be surprising.
	var classifier *rules.Classifier
	if cfg.CategoryRulesFile != "" {
		var err error
		classifier, err = rules.Load(cfg.CategoryRulesFile)
		if err != nil {
			loggerClient.Errorf("Failed to load category rules: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("category rules loaded",
			logger.String("file", cfg.CategoryRulesFile))
	}

	mapper := bird.NewMapper(classifier)
	client := bird.NewCLIClient(cfg.BirdBin, cfg.AuthToken, cfg.CT0, cfg.FetchTimeout, loggerClient)

	// Pick the persistence backend. File is the default; Redis is a
	// drop-in substitute behind the same interface.
	var store storage.Store
	var redisClient *goredis.Client
	switch cfg.StoreBackend {
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		var err error
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		store = redisstore.NewStore(redisClient, loggerClient)
		loggerClient.Info("redis store initialized")
	default:
		store = filestore.NewStore(cfg.DataDir, mapper, loggerClient)
		loggerClient.Info("file store initialized",
			logger.String("dir", cfg.DataDir))
	}

	syncOrchestrator := syncer.New(client, store, mapper, loggerClient)
	archiveOrchestrator := archiver.New(client, store, loggerClient)

	var autoSyncer *scheduler.AutoSyncer
	if cfg.SyncInterval > 0 {
		autoSyncer = scheduler.NewAutoSyncer(syncOrchestrator, loggerClient, cfg.SyncInterval)
	} else {
		loggerClient.Info("auto-sync disabled, sync via POST /api/sync only")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		Store:          store,
		Syncer:         syncOrchestrator,
		Archiver:       archiveOrchestrator,
		StoreBackend:   cfg.StoreBackend,
		RedisClient:    redisClient,
		SyncRateBurst:  cfg.SyncRateBurst,
		SyncRatePerMin: cfg.SyncRatePerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		autoSyncer:  autoSyncer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting xmarks v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("xmarks %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.autoSyncer != nil {
		a.autoSyncer.Start(ctx)
		a.logger.Info("auto-sync started",
			logger.Duration("interval", a.cfg.SyncInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.autoSyncer != nil {
		a.autoSyncer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ xmarks stopped cleanly")
	return nil
}
