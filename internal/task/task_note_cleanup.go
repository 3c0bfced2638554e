package task

import (
	"context"
	"time"

	"github.com/noteledger/note-ledger-service/internal/domain"
	"github.com/noteledger/note-ledger-service/pkg/util"

	"go.uber.org/zap"
)

// 单轮清理的批大小
const cleanupBatchSize = 200

// NoteCleanupTask 清理超过保留期的软删除笔记
// 物理删除笔记及其版本、共享和附件记录
type NoteCleanupTask struct {
	noteRepo  domain.NoteRepository
	retention time.Duration
	interval  time.Duration
	logger    *zap.Logger
}

// NewNoteCleanupTask 创建清理任务
// retentionTime 为空或解析结果不为正时返回 nil，表示禁用自动清理
func NewNoteCleanupTask(noteRepo domain.NoteRepository, retentionTime string, interval time.Duration, logger *zap.Logger) Task {
	if retentionTime == "" {
		return nil
	}
	retention, err := util.ParseDuration(retentionTime)
	if err != nil || retention <= 0 {
		return nil
	}

	return &NoteCleanupTask{
		noteRepo:  noteRepo,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Name 返回任务名称
func (t *NoteCleanupTask) Name() string {
	return "NoteCleanupTask"
}

// Run 执行清理任务
func (t *NoteCleanupTask) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-t.retention)

	var purged int
	for {
		notes, err := t.noteRepo.ListDeletedBefore(ctx, cutoff, cleanupBatchSize)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			break
		}

		for _, note := range notes {
			if err := t.noteRepo.Purge(ctx, note.ID); err != nil {
				t.logger.Error("purge note failed",
					zap.Int64("noteId", note.ID),
					zap.Error(err))
				return err
			}
			purged++
		}

		if len(notes) < cleanupBatchSize {
			break
		}
	}

	if purged > 0 {
		t.logger.Info("note cleanup completed",
			zap.Int("purged", purged),
			zap.Time("cutoff", cutoff))
	}
	return nil
}

// LoopInterval 返回执行间隔
func (t *NoteCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *NoteCleanupTask) IsStartupRun() bool {
	return true
}
