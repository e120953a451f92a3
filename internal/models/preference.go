package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultModelName   = "gpt-4o-mini"
	DefaultTemperature = 0.3
	DefaultVoice       = "alloy"
	DefaultPersona     = "You are a helpful AI assistant."
)

type Preference struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"-"`
	ModelName   string    `gorm:"not null;default:'gpt-4o-mini'" json:"model_name"`
	Temperature float64   `gorm:"not null;default:0.3" json:"temperature"`
	Voice       string    `gorm:"not null;default:'alloy'" json:"voice"`
	Persona     string    `gorm:"type:text;not null;default:'You are a helpful AI assistant.'" json:"persona"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Preference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// DefaultPreference builds the row created lazily on first read.
func DefaultPreference(userID uuid.UUID) Preference {
	return Preference{
		UserID:      userID,
		ModelName:   DefaultModelName,
		Temperature: DefaultTemperature,
		Voice:       DefaultVoice,
		Persona:     DefaultPersona,
	}
}
