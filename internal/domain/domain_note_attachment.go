package domain

import "time"

// NoteAttachment 笔记附件领域模型
// 附件内容存放在对象存储，这里只保存元信息
type NoteAttachment struct {
	ID          int64
	NoteID      int64
	UploaderUID int64
	Name        string
	FileKey     string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}
