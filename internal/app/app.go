// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/noteledger/note-ledger-service/internal/cache"
	"github.com/noteledger/note-ledger-service/internal/dao"
	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/service"
	pkgapp "github.com/noteledger/note-ledger-service/pkg/app"
	"github.com/noteledger/note-ledger-service/pkg/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	NoteRepo       domain.NoteRepository
	VersionRepo    domain.NoteVersionRepository
	ShareRepo      domain.NoteShareRepository
	AttachmentRepo domain.NoteAttachmentRepository
	UserRepo       domain.UserRepository
	Searcher       domain.NoteSearcher

	// Service 层
	AccessResolver    service.AccessResolver
	NoteService       service.NoteService
	VersionService    service.NoteVersionService
	ShareService      service.ShareService
	AttachmentService service.AttachmentService
	UserService       service.UserService

	// 基础设施组件
	TokenManager pkgapp.TokenManager
	Invalidator  cache.Invalidator
	Storage      storage.Storager

	// 启动时间，用于健康检查的 uptime
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	a.Dao = dao.New(db)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化缓存失效器，未配置 Redis 时退化为 Noop
	if cfg.Cache.Addr != "" {
		a.Invalidator = cache.NewRedisInvalidator(cfg.Cache, logger)
	} else {
		a.Invalidator = cache.NewNoopInvalidator()
	}

	// 初始化附件存储
	store, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage failed: %w", err)
	}
	a.Storage = store

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.VersionRepo = dao.NewNoteVersionRepository(a.Dao)
	a.ShareRepo = dao.NewNoteShareRepository(a.Dao)
	a.AttachmentRepo = dao.NewNoteAttachmentRepository(a.Dao)
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.Searcher = dao.NewNoteSearchRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
		App: service.AppServiceConfig{
			SoftDeleteRetentionTime: cfg.App.SoftDeleteRetentionTime,
			AttachmentMaxSize:       cfg.App.AttachmentMaxSize,
			DefaultPageSize:         cfg.App.DefaultPageSize,
			MaxPageSize:             cfg.App.MaxPageSize,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.AccessResolver = service.NewAccessResolver(a.NoteRepo, a.ShareRepo)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.VersionRepo, a.ShareRepo, a.AccessResolver, a.Searcher, a.Invalidator, logger, svcConfig)
	a.VersionService = service.NewNoteVersionService(a.VersionRepo, a.AccessResolver, logger)
	a.ShareService = service.NewShareService(a.ShareRepo, a.UserRepo, a.AccessResolver, a.Invalidator, logger)
	a.AttachmentService = service.NewAttachmentService(a.AttachmentRepo, a.AccessResolver, a.Storage, logger, svcConfig)
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)

	logger.Info("App container initialized successfully",
		zap.String("storage", string(cfg.Storage.Type)),
		zap.Bool("cacheInvalidation", cfg.Cache.Addr != ""))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.Invalidator != nil {
		if err := a.Invalidator.Close(); err != nil {
			a.logger.Warn("Cache invalidator close error", zap.Error(err))
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	// 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	var errs []error
	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
