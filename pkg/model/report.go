package model

import "time"

type Report struct {
	ID            string  `gorm:"column:id;primaryKey"`
	Name          string  `gorm:"column:name;uniqueIndex;not null"`
	JobDelegateID *string `gorm:"column:job_delegate_id"`
	Active        bool    `gorm:"column:active"`

	Executions []ReportExec `gorm:"foreignKey:ReportID"`
}

func (Report) TableName() string {
	return "reports"
}

// ReportExec is one run of a report
type ReportExec struct {
	ID       uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	ReportID string     `gorm:"column:report_id;index;not null"`
	Status   string     `gorm:"column:status"`
	Start    time.Time  `gorm:"column:start_date"`
	End      *time.Time `gorm:"column:end_date"`
}

func (ReportExec) TableName() string {
	return "report_execs"
}
