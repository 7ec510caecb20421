package gorm

import (
	"context"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
	"go.uber.org/zap"
)

var _ store.BatchStore = (*BatchStore)(nil)

// BatchStore implements store.BatchStore using GORM
type BatchStore struct {
	crud[model.Batch]
}

// DeleteExpired removes the batches whose expiry is strictly before now
func (s *BatchStore) DeleteExpired(ctx context.Context) (int64, error) {
	now := s.r.now()
	n, err := deleteWhere[model.Batch](ctx, s.r.db, "expiry < ?", now)
	if err != nil {
		return 0, err
	}
	logger.Log.Info("reaped expired batches", zap.Int64("count", n), zap.Time("before", now))
	return n, nil
}

func batchPlan(tx *Repositories) *cascade.Plan[*model.Batch] {
	return &cascade.Plan[*model.Batch]{
		Root:   "batch",
		Key:    func(b *model.Batch) string { return b.ID },
		Remove: removeRoot[model.Batch](tx),
	}
}
