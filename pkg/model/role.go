package model

// Role grants a set of privileges to its members
type Role struct {
	ID         string      `gorm:"column:id;primaryKey"`
	Privileges []Privilege `gorm:"many2many:role_privileges"`
}

func (Role) TableName() string {
	return "roles"
}

// HasPrivilege reports whether the role holds the privilege with the given key
func (r *Role) HasPrivilege(key string) bool {
	return hasPrivilege(r.Privileges, key)
}

func hasPrivilege(privileges []Privilege, key string) bool {
	for _, p := range privileges {
		if p.ID == key {
			return true
		}
	}
	return false
}
