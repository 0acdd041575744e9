package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pdfbrief/pdfbrief/internal/filestore"
)

type fileKeyLister interface {
	ListFileKeys(ctx context.Context) ([]string, error)
}

// purgeableStore is what the cleanup needs from a store; only the local
// backend implements it.
type purgeableStore interface {
	ListOlderThan(ctx context.Context, age time.Duration) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// FileCleanupJob removes stored files no summary row references. Such
// orphans appear when the record insert fails after the upload was already
// written to the store. A grace period keeps in-flight uploads safe.
type FileCleanupJob struct {
	summaries fileKeyLister
	store     filestore.Store
	minAge    time.Duration
}

func NewFileCleanupJob(summaries fileKeyLister, store filestore.Store, minAge time.Duration) *FileCleanupJob {
	return &FileCleanupJob{summaries: summaries, store: store, minAge: minAge}
}

func (j *FileCleanupJob) Name() string {
	return "file_cleanup"
}

func (j *FileCleanupJob) Run(ctx context.Context) error {
	purgeable, ok := j.store.(purgeableStore)
	if !ok {
		return nil
	}
	referenced, err := j.summaries.ListFileKeys(ctx)
	if err != nil {
		return err
	}
	keep := make(map[string]struct{}, len(referenced))
	for _, key := range referenced {
		keep[key] = struct{}{}
	}
	stored, err := purgeable.ListOlderThan(ctx, j.minAge)
	if err != nil {
		return err
	}
	logger := logutil.GetLogger(ctx)
	removed := 0
	for _, key := range stored {
		if _, ok := keep[key]; ok {
			continue
		}
		if err := purgeable.Delete(ctx, key); err != nil {
			logger.Warn("delete orphaned file failed", zap.String("key", key), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Info("orphaned files removed", zap.Int("count", removed))
	}
	return nil
}
