package model

// Application groups privileges that client applications may request
type Application struct {
	ID          string      `gorm:"column:id;primaryKey"`
	Description string      `gorm:"column:description"`
	Privileges  []Privilege `gorm:"foreignKey:ApplicationID"`
}

func (Application) TableName() string {
	return "applications"
}

// Privilege is a named permission, optionally owned by an application and
// referenced by roles and linked accounts
type Privilege struct {
	ID            string  `gorm:"column:id;primaryKey"`
	Description   string  `gorm:"column:description"`
	Spec          string  `gorm:"column:spec"`
	ApplicationID *string `gorm:"column:application_id;index"`
}

func (Privilege) TableName() string {
	return "privileges"
}

// HasPrivilege reports whether the account holds the privilege with the given key
func (a *LinkedAccount) HasPrivilege(key string) bool {
	return hasPrivilege(a.Privileges, key)
}
