package dto

import "github.com/noteledger/note-ledger-service/pkg/timex"

// ShareUpsertRequest 共享笔记请求参数
// 对同一用户重复共享会更新授权类型
type ShareUpsertRequest struct {
	SharedUID  int64  `json:"sharedUid" form:"sharedUid" binding:"required,min=1"`
	Permission string `json:"permission" form:"permission" binding:"required,oneof=read edit"`
}

// ShareRevokeRequest 撤销共享请求参数
type ShareRevokeRequest struct {
	SharedUID int64 `json:"sharedUid" form:"sharedUid" binding:"required,min=1"`
}

// ShareDTO 共享记录数据传输对象
type ShareDTO struct {
	ID         int64      `json:"id"`
	NoteID     int64      `json:"noteId"`
	OwnerUID   int64      `json:"ownerUid"`
	SharedUID  int64      `json:"sharedUid"`
	Permission string     `json:"permission"`
	UpdatedAt  timex.Time `json:"updatedAt"`
	CreatedAt  timex.Time `json:"createdAt"`
}
