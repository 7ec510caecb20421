package model

// ConnInstance is a configured connector. It owns the external resources
// provisioned through it.
type ConnInstance struct {
	ID            string `gorm:"column:id;primaryKey"`
	DisplayName   string `gorm:"column:display_name"`
	BundleName    string `gorm:"column:bundle_name"`
	ConnectorName string `gorm:"column:connector_name"`
	Version       string `gorm:"column:version"`
	Location      string `gorm:"column:location"`
	Conf          string `gorm:"column:conf;type:text"`

	Resources []ExternalResource `gorm:"foreignKey:ConnectorID"`
}

func (ConnInstance) TableName() string {
	return "conn_instances"
}

// ExternalResource is a target system reached through a connector
type ExternalResource struct {
	ID          string `gorm:"column:id;primaryKey"`
	ConnectorID string `gorm:"column:connector_id;index;not null"`

	AccountPolicyID     *string `gorm:"column:account_policy_id"`
	PasswordPolicyID    *string `gorm:"column:password_policy_id"`
	PropagationPolicyID *string `gorm:"column:propagation_policy_id"`
	InboundPolicyID     *string `gorm:"column:inbound_policy_id"`
	PushPolicyID        *string `gorm:"column:push_policy_id"`
}

func (ExternalResource) TableName() string {
	return "external_resources"
}
