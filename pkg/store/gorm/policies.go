package gorm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/kind"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
	"go.uber.org/zap"
)

var _ store.PolicyStore = (*PolicyStore)(nil)

// PolicyStore implements store.PolicyStore using GORM
type PolicyStore struct {
	crud[model.Policy]
}

// FindByKind returns the policies of one kind
func (s *PolicyStore) FindByKind(ctx context.Context, kind model.PolicyKind) ([]*model.Policy, error) {
	return query[model.Policy](ctx, s.r.db, "kind = ?", kind)
}

// policyPlan drops every reference to the policy from realms, client
// applications and resources. Only the field matching the policy kind is
// cleared.
func policyPlan(tx *Repositories) *cascade.Plan[*model.Policy] {
	return &cascade.Plan[*model.Policy]{
		Root: "policy",
		Key:  func(p *model.Policy) string { return p.ID },
		Relationships: []cascade.Relationship[*model.Policy]{
			{
				Name:       "realms",
				Referencer: "realm",
				Mutation:   cascade.NullReference,
				Apply: func(ctx context.Context, p *model.Policy) error {
					realms, err := tx.Realms.FindByPolicy(ctx, p)
					if err != nil {
						return err
					}
					return clearPolicyRefs(ctx, tx, realmPolicyRefs, p, realms)
				},
			},
			{
				Name:       "client applications",
				Referencer: "client application",
				Mutation:   cascade.NullReference,
				Apply: func(ctx context.Context, p *model.Policy) error {
					apps, err := tx.ClientApps.FindByPolicy(ctx, p)
					if err != nil {
						return err
					}
					return clearPolicyRefs(ctx, tx, clientAppPolicyRefs, p, apps)
				},
			},
			{
				Name:       "resources",
				Referencer: "external resource",
				Mutation:   cascade.NullReference,
				Apply: func(ctx context.Context, p *model.Policy) error {
					resources, err := tx.Resources.FindByPolicy(ctx, p)
					if err != nil {
						return err
					}
					return clearPolicyRefs(ctx, tx, resourcePolicyRefs, p, resources)
				},
			},
		},
		Remove: removeRoot[model.Policy](tx),
	}
}

func clearPolicyRefs[E any](ctx context.Context, tx *Repositories, refs *kind.Table[model.PolicyKind, policyRef[E]], policy *model.Policy, entities []*E) error {
	if len(entities) == 0 {
		return nil
	}
	r, err := refs.Resolve(policy.Kind)
	if err != nil {
		return err
	}
	for _, e := range entities {
		field := r.field(e)
		if *field == nil || **field != policy.ID {
			continue
		}
		*field = nil
		if err := saveOnly(ctx, tx.db, e); err != nil {
			return fmt.Errorf("clearing %s of %T: %w", r.column, e, err)
		}
	}
	logger.Log.Debug("cleared policy references",
		zap.String("policy", policy.ID),
		zap.String("column", r.column),
		zap.Int("count", len(entities)),
	)
	return nil
}

var _ store.RealmStore = (*RealmStore)(nil)

// RealmStore implements store.RealmStore using GORM
type RealmStore struct {
	crud[model.Realm]
}

// FindByPolicy returns the realms referring to the policy. Account and
// password policies are inherited, so the descendants of those realms that
// leave the reference empty are returned too.
func (s *RealmStore) FindByPolicy(ctx context.Context, policy *model.Policy) ([]*model.Realm, error) {
	where, args := policyFilter(realmPolicyRefs, policy)
	realms, err := query[model.Realm](ctx, s.r.db, where, args...)
	if err != nil {
		return nil, err
	}
	if policy.Kind != model.PolicyAccount && policy.Kind != model.PolicyPassword {
		return realms, nil
	}

	column := realmPolicyRefs.MustResolve(policy.Kind).column
	seen := make(map[string]bool, len(realms))
	for _, realm := range realms {
		seen[realm.ID] = true
	}
	result := realms
	for pending := realms; len(pending) > 0; {
		parent := pending[0]
		pending = pending[1:]

		children, err := query[model.Realm](ctx, s.r.db,
			"parent_id = ? AND ("+column+" IS NULL OR "+column+" = ?)", parent.ID, policy.ID)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			result = append(result, child)
			pending = append(pending, child)
		}
	}
	return result, nil
}

// FindDescendants returns every realm below the given one, deepest first
func (s *RealmStore) FindDescendants(ctx context.Context, realm *model.Realm) ([]*model.Realm, error) {
	return descendants(ctx, s.r.db, realm)
}

func descendants(ctx context.Context, db *gorm.DB, realm *model.Realm) ([]*model.Realm, error) {
	prefix := strings.TrimSuffix(realm.FullPath, "/") + "/"
	candidates, err := query[model.Realm](ctx, db,
		"SUBSTR(full_path, 1, ?) = ? AND id <> ?", utf8.RuneCountInString(prefix), prefix, realm.ID)
	if err != nil {
		return nil, err
	}

	// Collations may compare case-insensitively.
	result := candidates[:0]
	for _, c := range candidates {
		if strings.HasPrefix(c.FullPath, prefix) {
			result = append(result, c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return strings.Count(result[i].FullPath, "/") > strings.Count(result[j].FullPath, "/")
	})
	return result, nil
}

func guardRootRealm(r *model.Realm) error {
	if r.ParentID == nil || *r.ParentID == "" {
		return fmt.Errorf("%w: %s", store.ErrRootRealm, r.ID)
	}
	return nil
}

func realmPlan(tx *Repositories) *cascade.Plan[*model.Realm] {
	return &cascade.Plan[*model.Realm]{
		Root: "realm",
		Key:  func(r *model.Realm) string { return r.ID },
		Relationships: []cascade.Relationship[*model.Realm]{{
			Name:       "descendants",
			Referencer: "realm",
			Mutation:   cascade.DeleteReferrers,
			Apply: func(ctx context.Context, r *model.Realm) error {
				children, err := descendants(ctx, tx.db, r)
				if err != nil {
					return err
				}
				for _, child := range children {
					if err := remove(ctx, tx.db, child); err != nil {
						return err
					}
				}
				return nil
			},
		}},
		Remove: removeRoot[model.Realm](tx),
	}
}

var _ store.ClientAppStore = (*ClientAppStore)(nil)

// ClientAppStore implements store.ClientAppStore using GORM
type ClientAppStore struct {
	crud[model.ClientApp]
}

func (s *ClientAppStore) FindByPolicy(ctx context.Context, policy *model.Policy) ([]*model.ClientApp, error) {
	where, args := policyFilter(clientAppPolicyRefs, policy)
	return query[model.ClientApp](ctx, s.r.db, where, args...)
}

func clientAppPlan(tx *Repositories) *cascade.Plan[*model.ClientApp] {
	return &cascade.Plan[*model.ClientApp]{
		Root:   "client application",
		Key:    func(c *model.ClientApp) string { return c.ID },
		Remove: removeRoot[model.ClientApp](tx),
	}
}
