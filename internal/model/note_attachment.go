package model

import "github.com/noteledger/note-ledger-service/pkg/timex"

const TableNameNoteAttachment = "note_attachment"

// NoteAttachment mapped from table <note_attachment>
type NoteAttachment struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	NoteID      int64      `gorm:"column:note_id;not null;index:idx_note_id" json:"noteId" form:"noteId"`
	UploaderUID int64      `gorm:"column:uploader_uid;not null" json:"uploaderUid" form:"uploaderUid"`
	Name        string     `gorm:"column:name;not null" json:"name" form:"name"`
	FileKey     string     `gorm:"column:file_key;not null" json:"fileKey" form:"fileKey"`
	ContentType string     `gorm:"column:content_type" json:"contentType" form:"contentType"`
	Size        int64      `gorm:"column:size;default:0" json:"size" form:"size"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName NoteAttachment's table name
func (*NoteAttachment) TableName() string {
	return TableNameNoteAttachment
}
