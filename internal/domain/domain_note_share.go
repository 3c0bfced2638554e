package domain

import "time"

// Permission 定义共享授权类型
type Permission string

const (
	PermissionRead Permission = "read"
	PermissionEdit Permission = "edit"
)

// IsValid 判断授权类型是否合法
func (p Permission) IsValid() bool {
	return p == PermissionRead || p == PermissionEdit
}

// AccessLevel 访问级别，值越大权限越高
type AccessLevel int

const (
	// AccessNone 无任何访问权限
	AccessNone AccessLevel = iota
	// AccessViewer 只读访问
	AccessViewer
	// AccessEditor 可读可写
	AccessEditor
	// AccessOwner 拥有者，可写可共享可删除
	AccessOwner
)

// CanRead 判断是否可读
func (l AccessLevel) CanRead() bool {
	return l >= AccessViewer
}

// CanWrite 判断是否可写
func (l AccessLevel) CanWrite() bool {
	return l >= AccessEditor
}

// CanManage 判断是否可管理共享与删除
func (l AccessLevel) CanManage() bool {
	return l >= AccessOwner
}

func (l AccessLevel) String() string {
	switch l {
	case AccessOwner:
		return "owner"
	case AccessEditor:
		return "editor"
	case AccessViewer:
		return "viewer"
	default:
		return "none"
	}
}

// Level 将授权类型映射为访问级别
func (p Permission) Level() AccessLevel {
	switch p {
	case PermissionEdit:
		return AccessEditor
	case PermissionRead:
		return AccessViewer
	default:
		return AccessNone
	}
}

// NoteShare 笔记共享领域模型
// 同一 (NoteID, SharedUID) 至多一条记录，重复共享按更新处理
type NoteShare struct {
	ID         int64
	NoteID     int64
	OwnerUID   int64
	SharedUID  int64
	Permission Permission
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
