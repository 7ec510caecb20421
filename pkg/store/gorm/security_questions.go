package gorm

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

var _ store.SecurityQuestionStore = (*SecurityQuestionStore)(nil)

// SecurityQuestionStore implements store.SecurityQuestionStore using GORM
type SecurityQuestionStore struct {
	crud[model.SecurityQuestion]
}

func securityQuestionPlan(tx *Repositories) *cascade.Plan[*model.SecurityQuestion] {
	return &cascade.Plan[*model.SecurityQuestion]{
		Root: "security question",
		Key:  func(q *model.SecurityQuestion) string { return q.ID },
		Relationships: []cascade.Relationship[*model.SecurityQuestion]{{
			Name:       "users",
			Referencer: "user",
			Mutation:   cascade.ClearFields,
			Apply: func(ctx context.Context, q *model.SecurityQuestion) error {
				users, err := tx.Users.FindBySecurityQuestion(ctx, q.ID)
				if err != nil {
					return err
				}
				for _, u := range users {
					u.ClearSecurityQuestion()
					if err := saveOnly(ctx, tx.db, u); err != nil {
						return fmt.Errorf("saving user %q: %w", u.ID, err)
					}
				}
				return nil
			},
		}},
		Remove: removeRoot[model.SecurityQuestion](tx),
	}
}
