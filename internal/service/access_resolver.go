// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/noteledger/note-ledger-service/internal/domain"
)

// AccessResolver 解析用户对笔记的访问级别
// 拥有者为 Owner，被共享用户按授权类型为 Editor 或 Viewer，其余为 None
type AccessResolver interface {
	// Resolve 返回访问级别和笔记本身
	// 笔记不存在（含已软删除）返回 domain.ErrNotFound
	// 级别为 None 时仍返回笔记，由调用方决定如何响应，避免泄露存在性
	Resolve(ctx context.Context, noteID, uid int64) (domain.AccessLevel, *domain.Note, error)
}

// accessResolver 实现 AccessResolver 接口
type accessResolver struct {
	noteRepo  domain.NoteRepository
	shareRepo domain.NoteShareRepository
}

// NewAccessResolver 创建 AccessResolver 实例
func NewAccessResolver(noteRepo domain.NoteRepository, shareRepo domain.NoteShareRepository) AccessResolver {
	return &accessResolver{
		noteRepo:  noteRepo,
		shareRepo: shareRepo,
	}
}

// Resolve 解析访问级别
func (r *accessResolver) Resolve(ctx context.Context, noteID, uid int64) (domain.AccessLevel, *domain.Note, error) {
	note, err := r.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return domain.AccessNone, nil, err
	}

	if note.IsOwnedBy(uid) {
		return domain.AccessOwner, note, nil
	}

	share, err := r.shareRepo.Get(ctx, noteID, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AccessNone, note, nil
		}
		return domain.AccessNone, nil, err
	}

	return share.Permission.Level(), note, nil
}

var _ AccessResolver = (*accessResolver)(nil)
