package job

import (
	"context"
	log "log/slog"
	"time"
)

// OrphanQueue 待清理媒体队列
type OrphanQueue interface {
	PopOrphans(ctx context.Context, n int64) ([]string, error)
	EnqueueOrphans(ctx context.Context, keys ...string) error
}

// ObjectRemover 对象存储删除
type ObjectRemover interface {
	DeleteFile(ctx context.Context, objectName string) error
}

type MediaCleanupJob struct {
	queue     OrphanQueue
	storage   ObjectRemover
	batchSize int64
	timeout   time.Duration
}

func NewMediaCleanupJob(queue OrphanQueue, storage ObjectRemover, batchSize int64) *MediaCleanupJob {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &MediaCleanupJob{
		queue:     queue,
		storage:   storage,
		batchSize: batchSize,
		timeout:   time.Minute,
	}
}

// Run 取出一批被替换或删除的媒体对象并从 MinIO 删除, 失败的放回队列
func (s *MediaCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	keys, err := s.queue.PopOrphans(ctx, s.batchSize)
	if err != nil {
		log.Error("failed to pop orphan media", "err", err)
		return
	}
	if len(keys) == 0 {
		return
	}

	failed := make([]string, 0)
	for _, key := range keys {
		if err = s.storage.DeleteFile(ctx, key); err != nil {
			log.Error("failed to delete orphan media from minio", "fileKey", key, "err", err)
			failed = append(failed, key)
			continue
		}
	}

	if len(failed) > 0 {
		if err = s.queue.EnqueueOrphans(ctx, failed...); err != nil {
			log.Error("failed to requeue orphan media", "count", len(failed), "err", err)
		}
	}
	log.Info("media cleanup job finished", "cleaned_count", len(keys)-len(failed), "failed_count", len(failed))
}
