package dto

import "github.com/noteledger/note-ledger-service/pkg/timex"

// NoteCreateRequest 创建笔记请求参数
type NoteCreateRequest struct {
	Title   string `json:"title" form:"title" binding:"required,max=255"`
	Content string `json:"content" form:"content"`
}

// NoteUpdateRequest 更新笔记请求参数
// ExpectedVersion 为客户端读取时的版本号，提交时不一致则拒绝
type NoteUpdateRequest struct {
	Title           string `json:"title" form:"title" binding:"required,max=255"`
	Content         string `json:"content" form:"content"`
	ExpectedVersion int64  `json:"expectedVersion" form:"expectedVersion" binding:"required,min=1"`
}

// NoteRevertRequest 回滚笔记请求参数
// 回滚会生成一个内容等于目标版本的新版本，历史不被改写
type NoteRevertRequest struct {
	TargetVersion int64 `json:"targetVersion" form:"targetVersion" binding:"required,min=1"`
}

// NoteSearchRequest 搜索笔记请求参数
type NoteSearchRequest struct {
	Keyword string `json:"keyword" form:"keyword" binding:"required,max=255"`
}

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID          int64      `json:"id"`
	OwnerUID    int64      `json:"ownerUid"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentHash string     `json:"contentHash"`
	Version     int64      `json:"version"`
	Size        int64      `json:"size"`
	AccessLevel string     `json:"accessLevel"`
	UpdatedAt   timex.Time `json:"updatedAt"`
	CreatedAt   timex.Time `json:"createdAt"`
}

// NoteListItemDTO 笔记列表项，不携带内容
type NoteListItemDTO struct {
	ID        int64      `json:"id"`
	OwnerUID  int64      `json:"ownerUid"`
	Title     string     `json:"title"`
	Version   int64      `json:"version"`
	Size      int64      `json:"size"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}
