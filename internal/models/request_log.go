package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Method     string     `gorm:"not null" json:"method"`
	Path       string     `gorm:"not null" json:"path"`
	Status     int        `gorm:"not null" json:"status"`
	DurationMs int64      `gorm:"not null" json:"duration_ms"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (r *RequestLog) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
