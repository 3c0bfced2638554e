// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/dto"
	"github.com/noteledger/note-ledger-service/pkg/code"
	"github.com/noteledger/note-ledger-service/pkg/diff"
	"github.com/noteledger/note-ledger-service/pkg/timex"

	"go.uber.org/zap"
)

// NoteVersionService 定义笔记版本业务服务接口
// 版本历史只读，回滚走 NoteService.Revert
type NoteVersionService interface {
	// List 按版本号降序分页获取笔记的版本列表，要求读权限
	List(ctx context.Context, uid, noteID int64, page, pageSize int) ([]*dto.NoteVersionDTO, int64, error)

	// Get 获取笔记的指定版本，要求读权限
	Get(ctx context.Context, uid, noteID, version int64) (*dto.NoteVersionDTO, error)

	// Diff 计算两个版本之间的内容差异，要求读权限
	Diff(ctx context.Context, uid, noteID, fromVersion, toVersion int64) (*dto.NoteVersionDiffDTO, error)
}

// noteVersionService 实现 NoteVersionService 接口
type noteVersionService struct {
	versionRepo domain.NoteVersionRepository
	resolver    AccessResolver
	logger      *zap.Logger
}

// NewNoteVersionService 创建 NoteVersionService 实例
func NewNoteVersionService(versionRepo domain.NoteVersionRepository, resolver AccessResolver, logger *zap.Logger) NoteVersionService {
	return &noteVersionService{
		versionRepo: versionRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteVersionService) domainToDTO(v *domain.NoteVersion, withContent bool) *dto.NoteVersionDTO {
	if v == nil {
		return nil
	}
	d := &dto.NoteVersionDTO{
		Version:   v.Version,
		Title:     v.Title,
		EditorUID: v.EditorUID,
		CreatedAt: timex.Time(v.CreatedAt),
	}
	if withContent {
		d.Content = v.Content
	}
	return d
}

// requireRead 校验读权限，未授权用户一律返回笔记不存在
func (s *noteVersionService) requireRead(ctx context.Context, uid, noteID int64) error {
	level, _, err := s.resolver.Resolve(ctx, noteID, uid)
	if err != nil {
		return mapMutationError(err)
	}
	if !level.CanRead() {
		return code.ErrorNoteNotFound
	}
	return nil
}

// List 按版本号降序分页获取笔记的版本列表
func (s *noteVersionService) List(ctx context.Context, uid, noteID int64, page, pageSize int) ([]*dto.NoteVersionDTO, int64, error) {
	if err := s.requireRead(ctx, uid, noteID); err != nil {
		return nil, 0, err
	}

	versions, count, err := s.versionRepo.ListByNoteID(ctx, noteID, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	items := make([]*dto.NoteVersionDTO, 0, len(versions))
	for _, v := range versions {
		items = append(items, s.domainToDTO(v, false))
	}
	return items, count, nil
}

// Get 获取笔记的指定版本
func (s *noteVersionService) Get(ctx context.Context, uid, noteID, version int64) (*dto.NoteVersionDTO, error) {
	if err := s.requireRead(ctx, uid, noteID); err != nil {
		return nil, err
	}

	v, err := s.versionRepo.GetByVersion(ctx, noteID, version)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNoteVersionNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return s.domainToDTO(v, true), nil
}

// Diff 计算两个版本之间的内容差异
func (s *noteVersionService) Diff(ctx context.Context, uid, noteID, fromVersion, toVersion int64) (*dto.NoteVersionDiffDTO, error) {
	if err := s.requireRead(ctx, uid, noteID); err != nil {
		return nil, err
	}

	from, err := s.versionRepo.GetByVersion(ctx, noteID, fromVersion)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNoteVersionNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	to, err := s.versionRepo.GetByVersion(ctx, noteID, toVersion)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNoteVersionNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	return &dto.NoteVersionDiffDTO{
		FromVersion: from.Version,
		ToVersion:   to.Version,
		Patch:       diff.PatchText(from.Content, to.Content),
	}, nil
}

var _ NoteVersionService = (*noteVersionService)(nil)
