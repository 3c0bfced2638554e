package dto

import "github.com/noteledger/note-ledger-service/pkg/timex"

// NoteVersionDTO 笔记版本数据传输对象
type NoteVersionDTO struct {
	Version   int64      `json:"version"`
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	EditorUID int64      `json:"editorUid"`
	CreatedAt timex.Time `json:"createdAt"`
}

// NoteVersionDiffDTO 两个版本之间的内容差异
type NoteVersionDiffDTO struct {
	FromVersion int64  `json:"fromVersion"`
	ToVersion   int64  `json:"toVersion"`
	Patch       string `json:"patch"`
}
