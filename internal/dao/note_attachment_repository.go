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

// noteAttachmentRepository 实现 domain.NoteAttachmentRepository 接口
type noteAttachmentRepository struct {
	dao *Dao
}

// NewNoteAttachmentRepository 创建 NoteAttachmentRepository 实例
func NewNoteAttachmentRepository(dao *Dao) domain.NoteAttachmentRepository {
	return &noteAttachmentRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteAttachmentRepository) toDomain(m *model.NoteAttachment) *domain.NoteAttachment {
	if m == nil {
		return nil
	}
	return &domain.NoteAttachment{
		ID:          m.ID,
		NoteID:      m.NoteID,
		UploaderUID: m.UploaderUID,
		Name:        m.Name,
		FileKey:     m.FileKey,
		ContentType: m.ContentType,
		Size:        m.Size,
		CreatedAt:   time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取附件
func (r *noteAttachmentRepository) GetByID(ctx context.Context, id int64) (*domain.NoteAttachment, error) {
	var m model.NoteAttachment
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建附件记录
func (r *noteAttachmentRepository) Create(ctx context.Context, attachment *domain.NoteAttachment) (*domain.NoteAttachment, error) {
	m := &model.NoteAttachment{
		NoteID:      attachment.NoteID,
		UploaderUID: attachment.UploaderUID,
		Name:        attachment.Name,
		FileKey:     attachment.FileKey,
		ContentType: attachment.ContentType,
		Size:        attachment.Size,
		CreatedAt:   timex.Now(),
	}
	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByNoteID 获取笔记的附件列表
func (r *noteAttachmentRepository) ListByNoteID(ctx context.Context, noteID int64) ([]*domain.NoteAttachment, error) {
	var ms []*model.NoteAttachment
	err := r.dao.db.WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	attachments := make([]*domain.NoteAttachment, 0, len(ms))
	for _, m := range ms {
		attachments = append(attachments, r.toDomain(m))
	}
	return attachments, nil
}

// Delete 删除附件记录
func (r *noteAttachmentRepository) Delete(ctx context.Context, id int64) error {
	res := r.dao.db.WithContext(ctx).Where("id = ?", id).Delete(&model.NoteAttachment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.NoteAttachmentRepository = (*noteAttachmentRepository)(nil)
