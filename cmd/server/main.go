package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"learnease/config"
	"learnease/internal/api/handler"
	"learnease/internal/api/middleware"
	"learnease/internal/api/router"
	"learnease/internal/repository"
	"learnease/internal/service"
	"learnease/pkg/database"
	"learnease/pkg/jwt"
	applogger "learnease/pkg/logger"
	"learnease/pkg/redis"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// 1. 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	storeLog := applogger.Scoped(logger, &cfg.Log, applogger.ComponentStore)
	engineLog := applogger.Scoped(logger, &cfg.Log, applogger.ComponentEngine)
	httpLog := applogger.Scoped(logger, &cfg.Log, applogger.ComponentHTTP)

	// 3. 连接 Redis（可选：未启用或连接失败时降级运行）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, storeLog)
		if err != nil {
			if cfg.Store.Driver == config.StoreDriverRedis {
				logger.Fatal("Redis 连接失败，无法使用 redis 存储", zap.Error(err))
			}
			logger.Warn("Redis 连接失败，Token 黑名单、限流与跨进程广播将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 4. 选择持久化存储
	var db *gorm.DB
	var store repository.Store
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err = database.NewDB(&cfg.Database, cfg.Log.Level, storeLog)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, storeLog); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		store = repository.NewGormStore(db, cfg.Store.Key)
	case config.StoreDriverRedis:
		store = repository.NewRedisStore(rdb, cfg.Store.Key)
	default:
		store = repository.NewMemoryStore()
	}

	// 5. 状态仓库：进程内广播 + Redis 跨进程广播
	broadcaster := repository.NewBroadcaster(16)
	notifiers := repository.MultiNotifier{broadcaster}
	if rdb != nil {
		notifiers = append(notifiers, repository.NewRedisNotifier(rdb, storeLog))
	}

	stateRepo := repository.NewStateRepository(store, storeLog, repository.Options{
		Notifier: notifiers,
		Latency:  repository.FixedLatency(cfg.Engine.Latency),
	})

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := stateRepo.Load(loadCtx); err != nil {
		loadCancel()
		logger.Fatal("加载状态快照失败", zap.Error(err))
	}
	loadCancel()
	logger.Info("状态快照已加载", zap.Int64("version", stateRepo.Version()))

	// 6. 初始化 JWT 管理器
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// rdb 为 nil 时必须传字面量 nil，避免接口持有 nil 指针
	var blacklist service.TokenBlacklist
	var limiter middleware.RateLimiter
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// 7. 依赖注入: Repository → Service → Handler
	svc := service.NewService(cfg, stateRepo, stateRepo, jwtMgr, blacklist, engineLog)
	h := handler.NewHandler(svc, broadcaster)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, svc.Auth, limiter, httpLog)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:     engine,
		ReadTimeout: 15 * time.Second,
		// SSE 长连接不设写超时
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接
	if db != nil {
		if closeDB, _ := db.DB(); closeDB != nil {
			closeDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
