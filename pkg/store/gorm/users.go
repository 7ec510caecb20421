package gorm

import (
	"context"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

var _ store.UserStore = (*UserStore)(nil)

// UserStore implements store.UserStore using GORM
type UserStore struct {
	crud[model.User]
}

// FindBySecurityQuestion returns the users answering the question
func (s *UserStore) FindBySecurityQuestion(ctx context.Context, questionKey string) ([]*model.User, error) {
	return query[model.User](ctx, s.r.db, "security_question_id = ?", questionKey)
}

// userPlan removes what a user owns: linked accounts and attributes
func userPlan(tx *Repositories) *cascade.Plan[*model.User] {
	return &cascade.Plan[*model.User]{
		Root: "user",
		Key:  func(u *model.User) string { return u.ID },
		Relationships: []cascade.Relationship[*model.User]{
			{
				Name:       "linked accounts",
				Referencer: "linked account",
				Mutation:   cascade.DeleteReferrers,
				Apply: func(ctx context.Context, u *model.User) error {
					accounts, err := query[model.LinkedAccount](ctx, tx.db, "owner_id = ?", u.ID)
					if err != nil {
						return err
					}
					for _, account := range accounts {
						if err := tx.LinkedAccounts.Delete(ctx, account); err != nil {
							return err
						}
					}
					return nil
				},
			},
			{
				Name:       "plain attributes",
				Referencer: "user plain attribute",
				Mutation:   cascade.DeleteReferrers,
				Apply: func(ctx context.Context, u *model.User) error {
					_, err := deleteWhere[model.UPlainAttr](ctx, tx.db, "owner_id = ?", u.ID)
					return err
				},
			},
			{
				Name:       "derived attributes",
				Referencer: "user derived attribute",
				Mutation:   cascade.DeleteReferrers,
				Apply: func(ctx context.Context, u *model.User) error {
					_, err := deleteWhere[model.UDerAttr](ctx, tx.db, "owner_id = ?", u.ID)
					return err
				},
			},
			{
				Name:       "memberships",
				Referencer: "membership",
				Mutation:   cascade.DeleteReferrers,
				Apply: func(ctx context.Context, u *model.User) error {
					owned := "owner_id IN (SELECT id FROM memberships WHERE user_id = ?)"
					if _, err := deleteWhere[model.MPlainAttr](ctx, tx.db, owned, u.ID); err != nil {
						return err
					}
					if _, err := deleteWhere[model.MDerAttr](ctx, tx.db, owned, u.ID); err != nil {
						return err
					}
					_, err := deleteWhere[model.Membership](ctx, tx.db, "user_id = ?", u.ID)
					return err
				},
			},
		},
		Remove: removeRoot[model.User](tx),
	}
}
