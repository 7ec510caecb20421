// Package model defines the database models for idrepo.
//
// This package contains GORM models for the identity repository entities
// whose persistence and referential integrity are managed by pkg/store.
//
// # Polymorphic attributes
//
// Plain and derived attributes are stored in one table per owner kind:
//
//   - u_plain_attrs, g_plain_attrs, a_plain_attrs, m_plain_attrs, c_plain_attrs
//   - u_der_attrs, g_der_attrs, a_der_attrs, m_der_attrs
//
// The concrete record type is fixed by the owner's kind (see OwnerKind); no
// discriminator column is stored. Owners implement Attributable and keep their
// attributes in memory; AddPlainAttr rejects an attribute of the wrong kind.
//
// # Cross references
//
// The schema declares no foreign key cascades. References such as
// users.security_question_id, policies.conf (embedding auth module keys) or
// role_privileges are kept consistent by the cascade plans in pkg/store/gorm.
package model
