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

// noteShareRepository 实现 domain.NoteShareRepository 接口
type noteShareRepository struct {
	dao *Dao
}

// NewNoteShareRepository 创建 NoteShareRepository 实例
func NewNoteShareRepository(dao *Dao) domain.NoteShareRepository {
	return &noteShareRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteShareRepository) toDomain(m *model.NoteShare) *domain.NoteShare {
	if m == nil {
		return nil
	}
	return &domain.NoteShare{
		ID:         m.ID,
		NoteID:     m.NoteID,
		OwnerUID:   m.OwnerUID,
		SharedUID:  m.SharedUID,
		Permission: domain.Permission(m.Permission),
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

// Get 获取指定笔记对指定用户的共享记录
func (r *noteShareRepository) Get(ctx context.Context, noteID, sharedUID int64) (*domain.NoteShare, error) {
	var m model.NoteShare
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ? AND shared_uid = ?", noteID, sharedUID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Upsert 创建或更新共享记录
// 唯一索引 (note_id, shared_uid) 保证重复共享只更新授权类型
func (r *noteShareRepository) Upsert(ctx context.Context, share *domain.NoteShare) (*domain.NoteShare, error) {
	var m model.NoteShare
	now := timex.Now()

	err := r.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("note_id = ? AND shared_uid = ?", share.NoteID, share.SharedUID).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = model.NoteShare{
				NoteID:     share.NoteID,
				OwnerUID:   share.OwnerUID,
				SharedUID:  share.SharedUID,
				Permission: string(share.Permission),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			return tx.Create(&m).Error
		}
		if err != nil {
			return err
		}

		m.Permission = string(share.Permission)
		m.UpdatedAt = now
		return tx.Model(&model.NoteShare{}).
			Where("id = ?", m.ID).
			Updates(map[string]interface{}{
				"permission": m.Permission,
				"updated_at": m.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Delete 删除共享记录
func (r *noteShareRepository) Delete(ctx context.Context, noteID, sharedUID int64) error {
	res := r.dao.db.WithContext(ctx).
		Where("note_id = ? AND shared_uid = ?", noteID, sharedUID).
		Delete(&model.NoteShare{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByNoteID 获取笔记的全部共享记录
func (r *noteShareRepository) ListByNoteID(ctx context.Context, noteID int64) ([]*domain.NoteShare, error) {
	var ms []*model.NoteShare
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	shares := make([]*domain.NoteShare, 0, len(ms))
	for _, m := range ms {
		shares = append(shares, r.toDomain(m))
	}
	return shares, nil
}

var _ domain.NoteShareRepository = (*noteShareRepository)(nil)
