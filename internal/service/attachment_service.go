// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/internal/dto"
	"github.com/noteledger/note-ledger-service/pkg/code"
	"github.com/noteledger/note-ledger-service/pkg/convert"
	"github.com/noteledger/note-ledger-service/pkg/fileurl"
	"github.com/noteledger/note-ledger-service/pkg/logger"
	"github.com/noteledger/note-ledger-service/pkg/storage"
	"github.com/noteledger/note-ledger-service/pkg/timex"

	"go.uber.org/zap"
)

// AttachmentService 定义附件业务服务接口
type AttachmentService interface {
	// Upload 上传附件到笔记，要求写权限
	Upload(ctx context.Context, uid, noteID int64, fileHeader *multipart.FileHeader) (*dto.AttachmentDTO, error)

	// List 获取笔记的附件列表，要求读权限
	List(ctx context.Context, uid, noteID int64) ([]*dto.AttachmentDTO, error)

	// Delete 删除附件，要求对所属笔记的写权限
	Delete(ctx context.Context, uid, attachmentID int64) error
}

// attachmentService 实现 AttachmentService 接口
type attachmentService struct {
	attachmentRepo domain.NoteAttachmentRepository
	resolver       AccessResolver
	store          storage.Storager
	logger         *zap.Logger
	config         *ServiceConfig
}

// NewAttachmentService 创建 AttachmentService 实例
func NewAttachmentService(
	attachmentRepo domain.NoteAttachmentRepository,
	resolver AccessResolver,
	store storage.Storager,
	logger *zap.Logger,
	config *ServiceConfig,
) AttachmentService {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		resolver:       resolver,
		store:          store,
		logger:         logger,
		config:         config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *attachmentService) domainToDTO(a *domain.NoteAttachment) *dto.AttachmentDTO {
	if a == nil {
		return nil
	}
	return &dto.AttachmentDTO{
		ID:          a.ID,
		NoteID:      a.NoteID,
		UploaderUID: a.UploaderUID,
		Name:        a.Name,
		FileKey:     a.FileKey,
		ContentType: a.ContentType,
		Size:        a.Size,
		CreatedAt:   timex.Time(a.CreatedAt),
	}
}

// requireWrite 校验对笔记的写权限
func (s *attachmentService) requireWrite(ctx context.Context, uid, noteID int64) error {
	level, _, err := s.resolver.Resolve(ctx, noteID, uid)
	if err != nil {
		return mapMutationError(err)
	}
	if !level.CanWrite() {
		if level == domain.AccessNone {
			return code.ErrorNoteNotFound
		}
		return code.ErrorNotePermissionDenied
	}
	return nil
}

// maxSize 附件大小上限，0 表示不限制
func (s *attachmentService) maxSize() int64 {
	if s.config == nil {
		return 0
	}
	size, err := convert.StrTo(s.config.App.AttachmentMaxSize).ToSize()
	if err != nil {
		return 0
	}
	return size
}

// Upload 上传附件
func (s *attachmentService) Upload(ctx context.Context, uid, noteID int64, fileHeader *multipart.FileHeader) (*dto.AttachmentDTO, error) {
	if err := s.requireWrite(ctx, uid, noteID); err != nil {
		return nil, err
	}

	if max := s.maxSize(); max > 0 && fileHeader.Size > max {
		return nil, code.ErrorAttachmentTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, code.ErrorAttachmentUpload.WithDetails(err.Error())
	}
	defer file.Close()

	fileKey := fmt.Sprintf("note/%d/%s/%s", noteID, fileurl.GetDatePath(), fileurl.RandomFileName(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	savedKey, err := s.store.SendFile(fileKey, file, contentType)
	if err != nil {
		return nil, code.ErrorStorageOperation.WithDetails(err.Error())
	}

	attachment, err := s.attachmentRepo.Create(ctx, &domain.NoteAttachment{
		NoteID:      noteID,
		UploaderUID: uid,
		Name:        fileHeader.Filename,
		FileKey:     savedKey,
		ContentType: contentType,
		Size:        fileHeader.Size,
	})
	if err != nil {
		// 记录已落盘但入库失败的文件键，便于人工清理
		s.logger.Error("attachment record create failed after upload",
			zap.String(logger.FieldFileKey, savedKey),
			zap.String(logger.FieldError, err.Error()))
		return nil, code.ErrorAttachmentUpload.WithDetails(err.Error())
	}

	return s.domainToDTO(attachment), nil
}

// List 获取笔记的附件列表
func (s *attachmentService) List(ctx context.Context, uid, noteID int64) ([]*dto.AttachmentDTO, error) {
	level, _, err := s.resolver.Resolve(ctx, noteID, uid)
	if err != nil {
		return nil, mapMutationError(err)
	}
	if !level.CanRead() {
		return nil, code.ErrorNoteNotFound
	}

	attachments, err := s.attachmentRepo.ListByNoteID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	items := make([]*dto.AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		items = append(items, s.domainToDTO(a))
	}
	return items, nil
}

// Delete 删除附件
func (s *attachmentService) Delete(ctx context.Context, uid, attachmentID int64) error {
	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorAttachmentNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.requireWrite(ctx, uid, attachment.NoteID); err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorAttachmentNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	// 存储删除失败不回滚记录删除，留日志人工处理
	if err := s.store.Delete(attachment.FileKey); err != nil {
		s.logger.Warn("attachment file delete failed",
			zap.String(logger.FieldFileKey, attachment.FileKey),
			zap.String(logger.FieldError, err.Error()))
	}

	return nil
}

var _ AttachmentService = (*attachmentService)(nil)
