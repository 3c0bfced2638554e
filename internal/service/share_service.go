// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/noteledger/note-ledger-service/internal/cache"
	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/dto"
	"github.com/noteledger/note-ledger-service/pkg/code"
	"github.com/noteledger/note-ledger-service/pkg/timex"

	"go.uber.org/zap"
)

// ShareService 定义笔记共享业务服务接口
// 共享操作仅拥有者可执行
type ShareService interface {
	// Share 共享笔记给指定用户，重复共享按更新授权类型处理
	Share(ctx context.Context, uid, noteID int64, params *dto.ShareUpsertRequest) (*dto.ShareDTO, error)

	// Revoke 撤销共享
	Revoke(ctx context.Context, uid, noteID, sharedUID int64) error

	// List 获取笔记的全部共享记录
	List(ctx context.Context, uid, noteID int64) ([]*dto.ShareDTO, error)
}

// shareService 实现 ShareService 接口
type shareService struct {
	shareRepo   domain.NoteShareRepository
	userRepo    domain.UserRepository
	resolver    AccessResolver
	invalidator cache.Invalidator
	logger      *zap.Logger
}

// NewShareService 创建 ShareService 实例
func NewShareService(
	shareRepo domain.NoteShareRepository,
	userRepo domain.UserRepository,
	resolver AccessResolver,
	invalidator cache.Invalidator,
	logger *zap.Logger,
) ShareService {
	return &shareService{
		shareRepo:   shareRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		invalidator: invalidator,
		logger:      logger,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *shareService) domainToDTO(share *domain.NoteShare) *dto.ShareDTO {
	if share == nil {
		return nil
	}
	return &dto.ShareDTO{
		ID:         share.ID,
		NoteID:     share.NoteID,
		OwnerUID:   share.OwnerUID,
		SharedUID:  share.SharedUID,
		Permission: string(share.Permission),
		UpdatedAt:  timex.Time(share.UpdatedAt),
		CreatedAt:  timex.Time(share.CreatedAt),
	}
}

// requireOwner 校验拥有者权限
// 与笔记无关联的用户返回笔记不存在，非拥有者返回权限不足
func (s *shareService) requireOwner(ctx context.Context, uid, noteID int64) (*domain.Note, error) {
	level, note, err := s.resolver.Resolve(ctx, noteID, uid)
	if err != nil {
		return nil, mapMutationError(err)
	}
	if !level.CanManage() {
		if level == domain.AccessNone {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNotePermissionDenied
	}
	return note, nil
}

// Share 共享笔记给指定用户
func (s *shareService) Share(ctx context.Context, uid, noteID int64, params *dto.ShareUpsertRequest) (*dto.ShareDTO, error) {
	note, err := s.requireOwner(ctx, uid, noteID)
	if err != nil {
		return nil, err
	}

	// 拥有者不能共享给自己
	if params.SharedUID == uid {
		return nil, code.ErrorShareSelf
	}

	permission := domain.Permission(params.Permission)
	if !permission.IsValid() {
		return nil, code.ErrorShareInvalidPermission
	}

	// 目标用户必须存在
	if _, err := s.userRepo.GetByUID(ctx, params.SharedUID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	share, err := s.shareRepo.Upsert(ctx, &domain.NoteShare{
		NoteID:     noteID,
		OwnerUID:   note.OwnerUID,
		SharedUID:  params.SharedUID,
		Permission: permission,
	})
	if err != nil {
		return nil, code.ErrorShareUpsert.WithDetails(err.Error())
	}

	// 共享关系变化同时影响拥有者与被共享用户的可见列表
	_ = s.invalidator.InvalidateUserNotes(context.Background(), note.OwnerUID, params.SharedUID)

	return s.domainToDTO(share), nil
}

// Revoke 撤销共享
func (s *shareService) Revoke(ctx context.Context, uid, noteID, sharedUID int64) error {
	note, err := s.requireOwner(ctx, uid, noteID)
	if err != nil {
		return err
	}

	if err := s.shareRepo.Delete(ctx, noteID, sharedUID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorShareNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	_ = s.invalidator.InvalidateUserNotes(context.Background(), note.OwnerUID, sharedUID)
	return nil
}

// List 获取笔记的全部共享记录
func (s *shareService) List(ctx context.Context, uid, noteID int64) ([]*dto.ShareDTO, error) {
	if _, err := s.requireOwner(ctx, uid, noteID); err != nil {
		return nil, err
	}

	shares, err := s.shareRepo.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	items := make([]*dto.ShareDTO, 0, len(shares))
	for _, share := range shares {
		items = append(items, s.domainToDTO(share))
	}
	return items, nil
}

var _ ShareService = (*shareService)(nil)
