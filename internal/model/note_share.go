package model

import "github.com/noteledger/note-ledger-service/pkg/timex"

const TableNameNoteShare = "note_share"

// NoteShare mapped from table <note_share>
// (note_id, shared_uid) 唯一索引保证重复共享走更新
type NoteShare struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	NoteID     int64      `gorm:"column:note_id;not null;uniqueIndex:idx_note_shared_uid,priority:1" json:"noteId" form:"noteId"`
	OwnerUID   int64      `gorm:"column:owner_uid;not null" json:"ownerUid" form:"ownerUid"`
	SharedUID  int64      `gorm:"column:shared_uid;not null;uniqueIndex:idx_note_shared_uid,priority:2;index:idx_shared_uid" json:"sharedUid" form:"sharedUid"`
	Permission string     `gorm:"column:permission;not null" json:"permission" form:"permission"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName NoteShare's table name
func (*NoteShare) TableName() string {
	return TableNameNoteShare
}
