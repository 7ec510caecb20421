package model

type SecurityQuestion struct {
	ID      string `gorm:"column:id;primaryKey"`
	Content string `gorm:"column:content;not null"`
}

func (SecurityQuestion) TableName() string {
	return "security_questions"
}
