package model

// AuthModule is an authentication backend configuration. AUTH policies list
// the modules they allow by key.
type AuthModule struct {
	ID          string `gorm:"column:id;primaryKey"`
	Description string `gorm:"column:description"`
	Conf        string `gorm:"column:conf;type:text"`
	Order       int    `gorm:"column:module_order"`
}

func (AuthModule) TableName() string {
	return "auth_modules"
}
