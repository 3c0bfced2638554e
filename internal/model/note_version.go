package model

import "github.com/noteledger/note-ledger-service/pkg/timex"

const TableNameNoteVersion = "note_version"

// NoteVersion mapped from table <note_version>
// (note_id, version) 唯一索引保证同一笔记版本号不重复
type NoteVersion struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	NoteID    int64      `gorm:"column:note_id;not null;uniqueIndex:idx_note_version,priority:1" json:"noteId" form:"noteId"`
	Version   int64      `gorm:"column:version;not null;uniqueIndex:idx_note_version,priority:2" json:"version" form:"version"`
	Title     string     `gorm:"column:title;not null" json:"title" form:"title"`
	Content   string     `gorm:"column:content;type:text" json:"content" form:"content"`
	EditorUID int64      `gorm:"column:editor_uid;not null" json:"editorUid" form:"editorUid"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName NoteVersion's table name
func (*NoteVersion) TableName() string {
	return TableNameNoteVersion
}
