// Package domain 定义领域模型和接口
package domain

import "time"

// Note 笔记领域模型
// Version 从 1 开始，每次内容变更加 1，软删除不改变版本号
type Note struct {
	ID        int64
	OwnerUID  int64
	Title     string
	Content   string
	Version   int64
	Size      int64
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDeleted 判断笔记是否已软删除
func (n *Note) IsDeleted() bool {
	return n.DeletedAt != nil
}

// IsOwnedBy 判断笔记是否属于指定用户
func (n *Note) IsOwnedBy(uid int64) bool {
	return n.OwnerUID == uid
}
