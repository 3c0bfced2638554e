// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/model"
	"github.com/noteledger/note-ledger-service/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	note := &domain.Note{
		ID:        m.ID,
		OwnerUID:  m.OwnerUID,
		Title:     m.Title,
		Content:   m.Content,
		Version:   m.Version,
		Size:      m.Size,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
	if m.DeletedAt != nil {
		t := time.Time(*m.DeletedAt)
		note.DeletedAt = &t
	}
	return note
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	m := &model.Note{
		ID:        note.ID,
		OwnerUID:  note.OwnerUID,
		Title:     note.Title,
		Content:   note.Content,
		Version:   note.Version,
		Size:      note.Size,
		CreatedAt: timex.Time(note.CreatedAt),
		UpdatedAt: timex.Time(note.UpdatedAt),
	}
	if note.DeletedAt != nil {
		t := timex.Time(*note.DeletedAt)
		m.DeletedAt = &t
	}
	return m
}

// GetByID 根据ID获取笔记，排除已软删除的记录
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// CreateWithVersion 创建笔记并在同一事务内追加版本1的记录
func (r *noteRepository) CreateWithVersion(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := time.Now()
	m := r.toModel(note)
	m.Version = 1
	m.Size = int64(len(note.Content))
	m.CreatedAt = timex.Time(now)
	m.UpdatedAt = timex.Time(now)

	err := r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		version := &model.NoteVersion{
			NoteID:    m.ID,
			Version:   1,
			Title:     m.Title,
			Content:   m.Content,
			EditorUID: m.OwnerUID,
			CreatedAt: timex.Time(now),
		}
		return tx.Create(version).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdateCAS 条件更新笔记
// 事务内复核写权限后按期望版本条件更新，并追加新版本记录
// 先提交者胜出，后到的提交拿到 ErrVersionConflict
func (r *noteRepository) UpdateCAS(ctx context.Context, id, expectedVersion int64, title, content string, editorUID int64) (*domain.Note, error) {
	var m model.Note

	err := r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND deleted_at IS NULL", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		// 提交时复核写权限，共享关系可能在读取后被撤销
		if m.OwnerUID != editorUID {
			var share model.NoteShare
			err := tx.Where("note_id = ? AND shared_uid = ?", id, editorUID).First(&share).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 与笔记无任何关联的用户不暴露笔记的存在
				return domain.ErrNotFound
			}
			if err != nil {
				return err
			}
			if !domain.Permission(share.Permission).Level().CanWrite() {
				return domain.ErrPermissionDenied
			}
		}

		now := time.Now()
		newVersion := expectedVersion + 1
		res := tx.Model(&model.Note{}).
			Where("id = ? AND version = ? AND deleted_at IS NULL", id, expectedVersion).
			Updates(map[string]interface{}{
				"title":      title,
				"content":    content,
				"version":    newVersion,
				"size":       int64(len(content)),
				"updated_at": timex.Time(now),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrVersionConflict
		}

		version := &model.NoteVersion{
			NoteID:    id,
			Version:   newVersion,
			Title:     title,
			Content:   content,
			EditorUID: editorUID,
			CreatedAt: timex.Time(now),
		}
		if err := tx.Create(version).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// SoftDelete 软删除笔记，仅拥有者可操作，不改变版本号
func (r *noteRepository) SoftDelete(ctx context.Context, id, uid int64) error {
	now := timex.Now()
	res := r.dao.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ? AND owner_uid = ? AND deleted_at IS NULL", id, uid).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// accessibleScope 用户可访问的笔记范围：自有 + 被共享，排除已软删除
func (r *noteRepository) accessibleScope(ctx context.Context, uid int64) *gorm.DB {
	shared := r.dao.db.Model(&model.NoteShare{}).
		Select("note_id").
		Where("shared_uid = ?", uid)
	return r.dao.db.WithContext(ctx).Model(&model.Note{}).
		Where("deleted_at IS NULL").
		Where("owner_uid = ? OR id IN (?)", uid, shared)
}

// ListAccessible 分页获取用户可访问的笔记
func (r *noteRepository) ListAccessible(ctx context.Context, uid int64, page, pageSize int) ([]*domain.Note, error) {
	var ms []*model.Note
	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	err := r.accessibleScope(ctx, uid).
		Order("updated_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// ListAccessibleCount 获取用户可访问的笔记数量
func (r *noteRepository) ListAccessibleCount(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := r.accessibleScope(ctx, uid).Count(&count).Error
	return count, err
}

// ListDeletedBefore 获取在指定时间之前软删除的笔记
func (r *noteRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL AND deleted_at < ?", timex.Time(cutoff)).
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.toDomain(m))
	}
	return notes, nil
}

// Purge 物理删除笔记及其版本、共享和附件记录
func (r *noteRepository) Purge(ctx context.Context, id int64) error {
	return r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&model.NoteVersion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&model.NoteShare{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&model.NoteAttachment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Note{}).Error
	})
}

var _ domain.NoteRepository = (*noteRepository)(nil)
