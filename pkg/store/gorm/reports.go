package gorm

import (
	"context"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

var _ store.ReportStore = (*ReportStore)(nil)

// ReportStore implements store.ReportStore using GORM
type ReportStore struct {
	crud[model.Report]
}

// FindExecutions returns the executions of a report, oldest first
func (s *ReportStore) FindExecutions(ctx context.Context, reportKey string) ([]*model.ReportExec, error) {
	var execs []*model.ReportExec
	err := s.r.db.WithContext(ctx).Where("report_id = ?", reportKey).Order("start_date").Find(&execs).Error
	return execs, err
}

func reportPlan(tx *Repositories) *cascade.Plan[*model.Report] {
	return &cascade.Plan[*model.Report]{
		Root: "report",
		Key:  func(r *model.Report) string { return r.ID },
		Relationships: []cascade.Relationship[*model.Report]{{
			Name:       "executions",
			Referencer: "report execution",
			Mutation:   cascade.DeleteReferrers,
			Apply: func(ctx context.Context, r *model.Report) error {
				_, err := deleteWhere[model.ReportExec](ctx, tx.db, "report_id = ?", r.ID)
				return err
			},
		}},
		Remove: func(ctx context.Context, r *model.Report) error {
			r.Executions = nil
			return remove(ctx, tx.db, r)
		},
	}
}
