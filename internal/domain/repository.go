// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// NoteRepository 笔记仓储接口
// 读取接口默认排除已软删除的笔记
type NoteRepository interface {
	// GetByID 根据ID获取笔记
	GetByID(ctx context.Context, id int64) (*Note, error)

	// CreateWithVersion 创建笔记并在同一事务内追加版本1的记录
	CreateWithVersion(ctx context.Context, note *Note) (*Note, error)

	// UpdateCAS 条件更新笔记内容
	// 在同一事务内完成以下步骤：复核 editorUID 的写权限、
	// 按 expectedVersion 条件更新笔记、追加新版本记录
	// 版本不匹配返回 ErrVersionConflict，权限不足返回 ErrPermissionDenied
	UpdateCAS(ctx context.Context, id, expectedVersion int64, title, content string, editorUID int64) (*Note, error)

	// SoftDelete 软删除笔记（仅拥有者），不改变版本号
	SoftDelete(ctx context.Context, id, uid int64) error

	// ListAccessible 分页获取用户可访问的笔记（自有 + 被共享）
	ListAccessible(ctx context.Context, uid int64, page, pageSize int) ([]*Note, error)

	// ListAccessibleCount 获取用户可访问的笔记数量
	ListAccessibleCount(ctx context.Context, uid int64) (int64, error)

	// ListDeletedBefore 获取在指定时间之前软删除的笔记
	ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*Note, error)

	// Purge 物理删除笔记及其版本、共享和附件记录
	Purge(ctx context.Context, id int64) error
}

// NoteVersionRepository 笔记版本仓储接口，版本记录只增不改
type NoteVersionRepository interface {
	// GetByVersion 获取笔记的指定版本
	GetByVersion(ctx context.Context, noteID, version int64) (*NoteVersion, error)

	// ListByNoteID 按版本号降序分页获取笔记的版本列表
	ListByNoteID(ctx context.Context, noteID int64, page, pageSize int) ([]*NoteVersion, int64, error)

	// GetLatestVersion 获取笔记的最新版本号，无版本时返回 0
	GetLatestVersion(ctx context.Context, noteID int64) (int64, error)
}

// NoteShareRepository 笔记共享仓储接口
type NoteShareRepository interface {
	// Get 获取指定笔记对指定用户的共享记录
	Get(ctx context.Context, noteID, sharedUID int64) (*NoteShare, error)

	// Upsert 创建或更新共享记录，同一 (noteID, sharedUID) 至多一条
	Upsert(ctx context.Context, share *NoteShare) (*NoteShare, error)

	// Delete 删除共享记录
	Delete(ctx context.Context, noteID, sharedUID int64) error

	// ListByNoteID 获取笔记的全部共享记录
	ListByNoteID(ctx context.Context, noteID int64) ([]*NoteShare, error)
}

// NoteAttachmentRepository 笔记附件仓储接口
type NoteAttachmentRepository interface {
	// GetByID 根据ID获取附件
	GetByID(ctx context.Context, id int64) (*NoteAttachment, error)

	// Create 创建附件记录
	Create(ctx context.Context, attachment *NoteAttachment) (*NoteAttachment, error)

	// ListByNoteID 获取笔记的附件列表
	ListByNoteID(ctx context.Context, noteID int64) ([]*NoteAttachment, error)

	// Delete 删除附件记录
	Delete(ctx context.Context, id int64) error
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, password string, uid int64) error
}

// NoteSearcher 笔记搜索接口
// 默认实现基于数据库模糊匹配，可替换为全文检索引擎
type NoteSearcher interface {
	// Search 在用户可访问的笔记中搜索关键字
	Search(ctx context.Context, uid int64, keyword string, page, pageSize int) ([]*Note, int64, error)
}
