package domain

import "errors"

// 仓储层哨兵错误，服务层据此映射业务状态码
var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict 乐观锁版本冲突，提交时笔记版本与期望版本不一致
	ErrVersionConflict = errors.New("version conflict")
	// ErrPermissionDenied 提交时复核权限未通过
	ErrPermissionDenied = errors.New("permission denied")
)
