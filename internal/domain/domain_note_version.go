package domain

import "time"

// NoteVersion 笔记版本领域模型
// 同一笔记的版本号从 1 开始连续递增，记录只增不改
type NoteVersion struct {
	ID        int64
	NoteID    int64
	Version   int64
	Title     string
	Content   string
	EditorUID int64
	CreatedAt time.Time
}
