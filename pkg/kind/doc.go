// Package kind resolves polymorphic entity kinds to their concrete storage
// representation.
//
// Several logical concepts (plain attributes, derived attributes, policy
// references) are stored as distinct concrete records depending on which
// kind of entity owns them. A Table is the single, auditable mapping from the
// closed set of supported kinds to whatever the caller binds to them: a
// concrete record type, a table name, a column name.
//
// # Usage
//
//	columns := kind.New("realm policy column",
//	    kind.Bind(model.PolicyAccount, "account_policy_id"),
//	    kind.Bind(model.PolicyPassword, "password_policy_id"),
//	)
//	column, err := columns.Resolve(model.PolicyAuth)
//	if errors.Is(err, kind.ErrUnsupported) {
//	    // caller bug: the kind is outside the closed set
//	}
//
// Resolution never falls back to a default binding.
package kind
