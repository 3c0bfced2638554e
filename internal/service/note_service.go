// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/noteledger/note-ledger-service/internal/cache"
	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/dto"
	"github.com/noteledger/note-ledger-service/pkg/code"
	"github.com/noteledger/note-ledger-service/pkg/logger"
	"github.com/noteledger/note-ledger-service/pkg/timex"
	"github.com/noteledger/note-ledger-service/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Create 创建笔记，初始版本为 1
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Get 获取笔记，要求读权限
	Get(ctx context.Context, uid, noteID int64) (*dto.NoteDTO, error)

	// Update 更新笔记，要求写权限且期望版本与当前版本一致
	Update(ctx context.Context, uid, noteID int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 软删除笔记，仅拥有者可操作
	Delete(ctx context.Context, uid, noteID int64) error

	// Revert 回滚笔记到历史版本，仅所有者可执行，生成新版本而非改写历史
	Revert(ctx context.Context, uid, noteID int64, params *dto.NoteRevertRequest) (*dto.NoteDTO, error)

	// List 分页获取用户可访问的笔记
	List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.NoteListItemDTO, int64, error)

	// Search 在用户可访问的笔记中搜索关键字
	Search(ctx context.Context, uid int64, keyword string, page, pageSize int) ([]*dto.NoteListItemDTO, int64, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo    domain.NoteRepository
	versionRepo domain.NoteVersionRepository
	shareRepo   domain.NoteShareRepository
	resolver    AccessResolver
	searcher    domain.NoteSearcher
	invalidator cache.Invalidator
	sf          *singleflight.Group
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(
	noteRepo domain.NoteRepository,
	versionRepo domain.NoteVersionRepository,
	shareRepo domain.NoteShareRepository,
	resolver AccessResolver,
	searcher domain.NoteSearcher,
	invalidator cache.Invalidator,
	logger *zap.Logger,
	config *ServiceConfig,
) NoteService {
	return &noteService{
		noteRepo:    noteRepo,
		versionRepo: versionRepo,
		shareRepo:   shareRepo,
		resolver:    resolver,
		searcher:    searcher,
		invalidator: invalidator,
		sf:          &singleflight.Group{},
		logger:      logger,
		config:      config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *noteService) domainToDTO(note *domain.Note, level domain.AccessLevel) *dto.NoteDTO {
	if note == nil {
		return nil
	}
	return &dto.NoteDTO{
		ID:          note.ID,
		OwnerUID:    note.OwnerUID,
		Title:       note.Title,
		Content:     note.Content,
		ContentHash: util.EncodeSHA256([]byte(note.Content)),
		Version:     note.Version,
		Size:        note.Size,
		AccessLevel: level.String(),
		UpdatedAt:   timex.Time(note.UpdatedAt),
		CreatedAt:   timex.Time(note.CreatedAt),
	}
}

// domainToListItem 将领域模型转换为列表项 DTO
func (s *noteService) domainToListItem(note *domain.Note) *dto.NoteListItemDTO {
	return &dto.NoteListItemDTO{
		ID:        note.ID,
		OwnerUID:  note.OwnerUID,
		Title:     note.Title,
		Version:   note.Version,
		Size:      note.Size,
		UpdatedAt: timex.Time(note.UpdatedAt),
		CreatedAt: timex.Time(note.CreatedAt),
	}
}

// mapMutationError 将仓储层哨兵错误映射为业务状态码
func mapMutationError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return code.ErrorNoteNotFound
	case errors.Is(err, domain.ErrVersionConflict):
		return code.ErrorNoteVersionConflict
	case errors.Is(err, domain.ErrPermissionDenied):
		return code.ErrorNotePermissionDenied
	default:
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	note := &domain.Note{
		OwnerUID: uid,
		Title:    params.Title,
		Content:  params.Content,
	}

	created, err := s.noteRepo.CreateWithVersion(ctx, note)
	if err != nil {
		return nil, code.ErrorNoteCreate.WithDetails(err.Error())
	}

	s.invalidate(created.ID, uid)
	return s.domainToDTO(created, domain.AccessOwner), nil
}

// Get 获取笔记
// singleflight 合并并发的相同读取，降低热点笔记的数据库压力
func (s *noteService) Get(ctx context.Context, uid, noteID int64) (*dto.NoteDTO, error) {
	key := fmt.Sprintf("note:%d:%d", noteID, uid)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		level, note, err := s.resolver.Resolve(ctx, noteID, uid)
		if err != nil {
			return nil, mapMutationError(err)
		}
		// 无权限用户不暴露笔记的存在
		if !level.CanRead() {
			return nil, code.ErrorNoteNotFound
		}
		return s.domainToDTO(note, level), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.NoteDTO), nil
}

// Update 更新笔记
// 权限在读取时解析一次，又在提交事务内复核一次
func (s *noteService) Update(ctx context.Context, uid, noteID int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	if params.ExpectedVersion < 1 {
		return nil, code.ErrorNoteInvalidVersion
	}

	level, _, err := s.resolver.Resolve(ctx, noteID, uid)
	if err != nil {
		return nil, mapMutationError(err)
	}
	if !level.CanWrite() {
		if level == domain.AccessNone {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNotePermissionDenied
	}

	updated, err := s.noteRepo.UpdateCAS(ctx, noteID, params.ExpectedVersion, params.Title, params.Content, uid)
	if err != nil {
		return nil, mapMutationError(err)
	}

	s.invalidate(noteID, updated.OwnerUID)
	return s.domainToDTO(updated, level), nil
}

// Delete 软删除笔记，仅拥有者可操作，版本号不变
func (s *noteService) Delete(ctx context.Context, uid, noteID int64) error {
	level, note, err := s.resolver.Resolve(ctx, noteID, uid)
	if err != nil {
		return mapMutationError(err)
	}
	if !level.CanManage() {
		if level == domain.AccessNone {
			return code.ErrorNoteNotFound
		}
		return code.ErrorNotePermissionDenied
	}

	if err := s.noteRepo.SoftDelete(ctx, noteID, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorNoteDelete.WithDetails(err.Error())
	}

	s.invalidate(noteID, note.OwnerUID)
	return nil
}

// Revert 回滚笔记到历史版本
// 回滚只是一次内容恰好等于目标版本的普通更新，同样受乐观锁约束
// revertMaxRetries 回滚内部条件更新的最大重试次数
const revertMaxRetries = 3

func (s *noteService) Revert(ctx context.Context, uid, noteID int64, params *dto.NoteRevertRequest) (*dto.NoteDTO, error) {
	if params.TargetVersion < 1 {
		return nil, code.ErrorNoteInvalidVersion
	}

	level, note, err := s.resolver.Resolve(ctx, noteID, uid)
	if err != nil {
		return nil, mapMutationError(err)
	}
	// 回滚仅限所有者，编辑者不可回滚
	if !level.CanManage() {
		if level == domain.AccessNone {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorNotePermissionDenied
	}

	target, err := s.versionRepo.GetByVersion(ctx, noteID, params.TargetVersion)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNoteVersionNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// 回滚不携带客户端期望版本，以当前版本做条件更新，与并发更新冲突时重读重试
	var updated *domain.Note
	for attempt := 0; attempt < revertMaxRetries; attempt++ {
		updated, err = s.noteRepo.UpdateCAS(ctx, noteID, note.Version, target.Title, target.Content, uid)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, mapMutationError(err)
		}
		_, note, err = s.resolver.Resolve(ctx, noteID, uid)
		if err != nil {
			return nil, mapMutationError(err)
		}
		err = domain.ErrVersionConflict
	}
	if err != nil {
		return nil, mapMutationError(err)
	}

	s.invalidate(noteID, updated.OwnerUID)
	return s.domainToDTO(updated, level), nil
}

// List 分页获取用户可访问的笔记
func (s *noteService) List(ctx context.Context, uid int64, page, pageSize int) ([]*dto.NoteListItemDTO, int64, error) {
	count, err := s.noteRepo.ListAccessibleCount(ctx, uid)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	notes, err := s.noteRepo.ListAccessible(ctx, uid, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	items := make([]*dto.NoteListItemDTO, 0, len(notes))
	for _, note := range notes {
		items = append(items, s.domainToListItem(note))
	}
	return items, count, nil
}

// Search 在用户可访问的笔记中搜索关键字
func (s *noteService) Search(ctx context.Context, uid int64, keyword string, page, pageSize int) ([]*dto.NoteListItemDTO, int64, error) {
	notes, count, err := s.searcher.Search(ctx, uid, keyword, page, pageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}

	items := make([]*dto.NoteListItemDTO, 0, len(notes))
	for _, note := range notes {
		items = append(items, s.domainToListItem(note))
	}
	return items, count, nil
}

// invalidate 提交后使相关用户的列表缓存失效
// 尽力而为：失效失败只记录日志，不回滚已提交的写入
func (s *noteService) invalidate(noteID, ownerUID int64) {
	ctx := context.Background()

	uids := []int64{ownerUID}
	shares, err := s.shareRepo.ListByNoteID(ctx, noteID)
	if err != nil {
		s.logger.Warn("list shares for cache invalidation failed",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.String(logger.FieldError, err.Error()))
	} else {
		for _, share := range shares {
			uids = append(uids, share.SharedUID)
		}
	}

	_ = s.invalidator.InvalidateUserNotes(ctx, uids...)
}
