package model

// Realm is a node of the realm tree. Each policy reference may be left empty,
// in which case the realm inherits the nearest ancestor's policy.
type Realm struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Name     string  `gorm:"column:name;not null"`
	ParentID *string `gorm:"column:parent_id;index"`
	FullPath string  `gorm:"column:full_path;uniqueIndex;not null"`

	AccountPolicyID          *string `gorm:"column:account_policy_id"`
	PasswordPolicyID         *string `gorm:"column:password_policy_id"`
	AuthPolicyID             *string `gorm:"column:auth_policy_id"`
	AccessPolicyID           *string `gorm:"column:access_policy_id"`
	AttrReleasePolicyID      *string `gorm:"column:attr_release_policy_id"`
	TicketExpirationPolicyID *string `gorm:"column:ticket_expiration_policy_id"`
}

func (Realm) TableName() string {
	return "realms"
}
