package model

type ClientAppKind string

const (
	ClientAppCASSP   ClientAppKind = "CASSP"
	ClientAppOIDCRP  ClientAppKind = "OIDCRP"
	ClientAppSAML2SP ClientAppKind = "SAML2SP"
)

// ClientApp is a CAS, OIDC or SAML2 client application
type ClientApp struct {
	ID       string        `gorm:"column:id;primaryKey"`
	Kind     ClientAppKind `gorm:"column:kind;index;not null"`
	Name     string        `gorm:"column:name;not null"`
	ClientID int64         `gorm:"column:client_app_id"`
	RealmID  *string       `gorm:"column:realm_id"`

	AuthPolicyID             *string `gorm:"column:auth_policy_id"`
	AccessPolicyID           *string `gorm:"column:access_policy_id"`
	AttrReleasePolicyID      *string `gorm:"column:attr_release_policy_id"`
	TicketExpirationPolicyID *string `gorm:"column:ticket_expiration_policy_id"`
}

func (ClientApp) TableName() string {
	return "client_apps"
}
