package model

// SRARoute is a route served by the secure remote access gateway
type SRARoute struct {
	ID     string `gorm:"column:id;primaryKey"`
	Name   string `gorm:"column:name;uniqueIndex;not null"`
	Target string `gorm:"column:target;not null"`
	Order  int    `gorm:"column:route_order"`
	Logout bool   `gorm:"column:logout"`
}

func (SRARoute) TableName() string {
	return "sra_routes"
}
