package dto

import "github.com/noteledger/note-ledger-service/pkg/timex"

// AttachmentDTO 附件数据传输对象
type AttachmentDTO struct {
	ID          int64      `json:"id"`
	NoteID      int64      `json:"noteId"`
	UploaderUID int64      `json:"uploaderUid"`
	Name        string     `json:"name"`
	FileKey     string     `json:"fileKey"`
	URL         string     `json:"url,omitempty"`
	ContentType string     `json:"contentType"`
	Size        int64      `json:"size"`
	CreatedAt   timex.Time `json:"createdAt"`
}
