package gorm

import (
	"github.com/doodlesbykumbi/idrepo/pkg/kind"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
)

// policyRef is the field of an entity E referring to a policy of one kind
type policyRef[E any] struct {
	column string
	field  func(*E) **string
}

func ref[E any](column string, field func(*E) **string) policyRef[E] {
	return policyRef[E]{column: column, field: field}
}

var realmPolicyRefs = kind.New("realm policy reference",
	kind.Bind(model.PolicyAccount, ref("account_policy_id", func(r *model.Realm) **string { return &r.AccountPolicyID })),
	kind.Bind(model.PolicyPassword, ref("password_policy_id", func(r *model.Realm) **string { return &r.PasswordPolicyID })),
	kind.Bind(model.PolicyAuth, ref("auth_policy_id", func(r *model.Realm) **string { return &r.AuthPolicyID })),
	kind.Bind(model.PolicyAccess, ref("access_policy_id", func(r *model.Realm) **string { return &r.AccessPolicyID })),
	kind.Bind(model.PolicyAttrRelease, ref("attr_release_policy_id", func(r *model.Realm) **string { return &r.AttrReleasePolicyID })),
	kind.Bind(model.PolicyTicketExpiration, ref("ticket_expiration_policy_id", func(r *model.Realm) **string { return &r.TicketExpirationPolicyID })),
)

var clientAppPolicyRefs = kind.New("client application policy reference",
	kind.Bind(model.PolicyAuth, ref("auth_policy_id", func(c *model.ClientApp) **string { return &c.AuthPolicyID })),
	kind.Bind(model.PolicyAccess, ref("access_policy_id", func(c *model.ClientApp) **string { return &c.AccessPolicyID })),
	kind.Bind(model.PolicyAttrRelease, ref("attr_release_policy_id", func(c *model.ClientApp) **string { return &c.AttrReleasePolicyID })),
	kind.Bind(model.PolicyTicketExpiration, ref("ticket_expiration_policy_id", func(c *model.ClientApp) **string { return &c.TicketExpirationPolicyID })),
)

var resourcePolicyRefs = kind.New("resource policy reference",
	kind.Bind(model.PolicyAccount, ref("account_policy_id", func(r *model.ExternalResource) **string { return &r.AccountPolicyID })),
	kind.Bind(model.PolicyPassword, ref("password_policy_id", func(r *model.ExternalResource) **string { return &r.PasswordPolicyID })),
	kind.Bind(model.PolicyPropagation, ref("propagation_policy_id", func(r *model.ExternalResource) **string { return &r.PropagationPolicyID })),
	kind.Bind(model.PolicyInbound, ref("inbound_policy_id", func(r *model.ExternalResource) **string { return &r.InboundPolicyID })),
	kind.Bind(model.PolicyPush, ref("push_policy_id", func(r *model.ExternalResource) **string { return &r.PushPolicyID })),
)

// matchNone is the predicate used for kinds without a reference column
const matchNone = "1 = 0"

// policyFilter returns the equality predicate selecting the entities that
// refer to the policy. A policy kind the entity cannot refer to yields a
// predicate matching nothing.
func policyFilter[E any](refs *kind.Table[model.PolicyKind, policyRef[E]], policy *model.Policy) (string, []any) {
	r, err := refs.Resolve(policy.Kind)
	if err != nil {
		return matchNone, nil
	}
	return r.column + " = ?", []any{policy.ID}
}
