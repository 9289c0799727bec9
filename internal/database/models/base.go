package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel provides common fields for all models.
// IDs are strings so seeded and sentinel identifiers (E004, TI_STOCK) live next to generated UUIDs.
type BaseModel struct {
	ID        string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets the ID if not already set
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	return nil
}
