package model

import "github.com/noteledger/note-ledger-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
// version 由条件更新语句维护，deleted_at 非空表示已软删除
type Note struct {
	ID        int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	OwnerUID  int64       `gorm:"column:owner_uid;not null;index:idx_owner_uid" json:"ownerUid" form:"ownerUid"`
	Title     string      `gorm:"column:title;not null" json:"title" form:"title"`
	Content   string      `gorm:"column:content;type:text" json:"content" form:"content"`
	Version   int64       `gorm:"column:version;not null;default:1" json:"version" form:"version"`
	Size      int64       `gorm:"column:size;default:0" json:"size" form:"size"`
	DeletedAt *timex.Time `gorm:"column:deleted_at;type:datetime;default:NULL;index:idx_deleted_at" json:"deletedAt" form:"deletedAt"`
	CreatedAt timex.Time  `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time  `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
