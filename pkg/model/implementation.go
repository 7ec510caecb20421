package model

// ImplementationEngine is the language an implementation body is written in
type ImplementationEngine string

const (
	EngineJava   ImplementationEngine = "JAVA"
	EngineGroovy ImplementationEngine = "GROOVY"
)

// Implementation is pluggable behaviour (a class name or a script body)
// referenced by tasks, policies and reports
type Implementation struct {
	ID     string               `gorm:"column:id;primaryKey"`
	Engine ImplementationEngine `gorm:"column:engine;not null"`
	Type   string               `gorm:"column:impl_type;index;not null"`
	Body   string               `gorm:"column:body;type:text"`
}

func (Implementation) TableName() string {
	return "implementations"
}
