package model

import "time"

// Batch is the ephemeral record of an asynchronous batch request
type Batch struct {
	ID      string    `gorm:"column:id;primaryKey"`
	Expiry  time.Time `gorm:"column:expiry;index;not null"`
	Results string    `gorm:"column:results;type:text"`
}

func (Batch) TableName() string {
	return "batches"
}

// IsExpired returns true if the batch expired strictly before now
func (b *Batch) IsExpired(now time.Time) bool {
	return b.Expiry.Before(now)
}
