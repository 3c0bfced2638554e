package service

import (
	"context"
	"testing"

	"github.com/noteledger/note-ledger-service/internal/cache"
	"github.com/noteledger/note-ledger-service/internal/dao"
	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/model"
	"github.com/noteledger/note-ledger-service/pkg/app"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// testEnv 服务层测试环境，挂在内存 SQLite 上
type testEnv struct {
	db         *gorm.DB
	userRepo   domain.UserRepository
	noteRepo   domain.NoteRepository
	verRepo    domain.NoteVersionRepository
	shareRepo  domain.NoteShareRepository
	resolver   AccessResolver
	noteSvc    NoteService
	versionSvc NoteVersionService
	shareSvc   ShareService
	userSvc    UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}

	// 内存库只允许单连接，多连接会各自拿到独立的空库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	d := dao.New(db)
	userRepo := dao.NewUserRepository(d)
	noteRepo := dao.NewNoteRepository(d)
	verRepo := dao.NewNoteVersionRepository(d)
	shareRepo := dao.NewNoteShareRepository(d)
	searcher := dao.NewNoteSearchRepository(d)
	resolver := NewAccessResolver(noteRepo, shareRepo)

	log := zap.NewNop()
	invalidator := cache.NewNoopInvalidator()
	config := &ServiceConfig{
		User: UserServiceConfig{RegisterIsEnable: true},
		App:  AppServiceConfig{DefaultPageSize: 20, MaxPageSize: 100},
	}

	return &testEnv{
		db:         db,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
		verRepo:    verRepo,
		shareRepo:  shareRepo,
		resolver:   resolver,
		noteSvc:    NewNoteService(noteRepo, verRepo, shareRepo, resolver, searcher, invalidator, log, config),
		versionSvc: NewNoteVersionService(verRepo, resolver, log),
		shareSvc:   NewShareService(shareRepo, userRepo, resolver, invalidator, log),
		userSvc:    NewUserService(userRepo, app.NewTokenManager(app.TokenConfig{SecretKey: "test-secret"}), log, config),
	}
}

// mustCreateUser 创建测试用户
func (e *testEnv) mustCreateUser(t *testing.T, username string) int64 {
	t.Helper()
	user, err := e.userRepo.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	})
	if err != nil {
		t.Fatalf("create user %s failed: %v", username, err)
	}
	return user.UID
}
