// Package dao 实现数据访问层
package dao

import (
	"context"
	"strings"

	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/model"
)

// noteSearchRepository 实现 domain.NoteSearcher 接口
// 基于数据库 LIKE 模糊匹配，关键字始终作为绑定参数传递
type noteSearchRepository struct {
	dao   *Dao
	notes *noteRepository
}

// NewNoteSearchRepository 创建 NoteSearcher 实例
func NewNoteSearchRepository(dao *Dao) domain.NoteSearcher {
	return &noteSearchRepository{
		dao:   dao,
		notes: &noteRepository{dao: dao},
	}
}

// escapeLike 转义 LIKE 通配符，避免关键字中的 % 和 _ 参与匹配
func escapeLike(keyword string) string {
	keyword = strings.ReplaceAll(keyword, `\`, `\\`)
	keyword = strings.ReplaceAll(keyword, "%", `\%`)
	keyword = strings.ReplaceAll(keyword, "_", `\_`)
	return keyword
}

// Search 在用户可访问的笔记中搜索关键字，匹配标题或内容
func (r *noteSearchRepository) Search(ctx context.Context, uid int64, keyword string, page, pageSize int) ([]*domain.Note, int64, error) {
	pattern := "%" + escapeLike(keyword) + "%"

	var count int64
	err := r.notes.accessibleScope(ctx, uid).
		Where("title LIKE ? OR content LIKE ?", pattern, pattern).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	offset := 0
	if page > 0 {
		offset = (page - 1) * pageSize
	}
	var ms []*model.Note
	err = r.notes.accessibleScope(ctx, uid).
		Where("title LIKE ? OR content LIKE ?", pattern, pattern).
		Order("updated_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		notes = append(notes, r.notes.toDomain(m))
	}
	return notes, count, nil
}

var _ domain.NoteSearcher = (*noteSearchRepository)(nil)
