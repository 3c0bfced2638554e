// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/model"

	"gorm.io/gorm"
)

// noteVersionRepository 实现 domain.NoteVersionRepository 接口
// 版本记录只通过笔记事务写入，这里只提供读取
type noteVersionRepository struct {
	dao *Dao
}

// NewNoteVersionRepository 创建 NoteVersionRepository 实例
func NewNoteVersionRepository(dao *Dao) domain.NoteVersionRepository {
	return &noteVersionRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteVersionRepository) toDomain(m *model.NoteVersion) *domain.NoteVersion {
	if m == nil {
		return nil
	}
	return &domain.NoteVersion{
		ID:        m.ID,
		NoteID:    m.NoteID,
		Version:   m.Version,
		Title:     m.Title,
		Content:   m.Content,
		EditorUID: m.EditorUID,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// GetByVersion 获取笔记的指定版本
func (r *noteVersionRepository) GetByVersion(ctx context.Context, noteID, version int64) (*domain.NoteVersion, error) {
	var m model.NoteVersion
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ? AND version = ?", noteID, version).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByNoteID 按版本号降序分页获取笔记的版本列表
func (r *noteVersionRepository) ListByNoteID(ctx context.Context, noteID int64, page, pageSize int) ([]*domain.NoteVersion, int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).Model(&model.NoteVersion{}).
		Where("note_id = ?", noteID).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	var ms []*model.NoteVersion
	err = r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("version DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	versions := make([]*domain.NoteVersion, 0, len(ms))
	for _, m := range ms {
		versions = append(versions, r.toDomain(m))
	}
	return versions, count, nil
}

// GetLatestVersion 获取笔记的最新版本号，无版本时返回 0
func (r *noteVersionRepository) GetLatestVersion(ctx context.Context, noteID int64) (int64, error) {
	var m model.NoteVersion
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("version DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return m.Version, nil
}

var _ domain.NoteVersionRepository = (*noteVersionRepository)(nil)
