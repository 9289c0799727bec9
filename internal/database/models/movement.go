package models

import (
	"time"

	apperrors "asset-management-backend/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement is the immutable record of one custody change for one asset.
// AssetID carries no foreign key: history survives asset deletion.
type Movement struct {
	ID            string        `json:"id" gorm:"type:varchar(64);primaryKey"`
	AssetID       string        `json:"asset_id" gorm:"size:64;not null;index"`
	Date          time.Time     `json:"date" gorm:"not null;index"`
	FromOwnerType CustodianKind `json:"from_owner_type" gorm:"size:30;not null"`
	FromOwnerID   string        `json:"from_owner_id" gorm:"size:64;not null"`
	FromOwnerName string        `json:"from_owner_name" gorm:"size:200;not null"`
	ToOwnerType   CustodianKind `json:"to_owner_type" gorm:"size:30;not null"`
	ToOwnerID     string        `json:"to_owner_id" gorm:"size:64;not null;index"`
	ToOwnerName   string        `json:"to_owner_name" gorm:"size:200;not null"`
	Reason        string        `json:"reason" gorm:"size:200;not null"`
	Observations  string        `json:"observations,omitempty" gorm:"type:text"`
	RegisteredBy  string        `json:"registered_by" gorm:"size:200;not null"`
	CreatedAt     time.Time     `json:"created_at"`
}

// TableName returns the table name for Movement
func (Movement) TableName() string {
	return "movements"
}

// BeforeCreate sets the ID if not already set
func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// BeforeUpdate rejects any change to a recorded movement
func (m *Movement) BeforeUpdate(tx *gorm.DB) error {
	return apperrors.ErrMovementImmutable
}

// BeforeDelete rejects deletion of a recorded movement
func (m *Movement) BeforeDelete(tx *gorm.DB) error {
	return apperrors.ErrMovementImmutable
}

// Origin returns the custodian the asset left
func (m *Movement) Origin() CustodianRef {
	return CustodianRef{Kind: m.FromOwnerType, ID: m.FromOwnerID, Name: m.FromOwnerName}
}

// Destination returns the custodian the asset went to
func (m *Movement) Destination() CustodianRef {
	return CustodianRef{Kind: m.ToOwnerType, ID: m.ToOwnerID, Name: m.ToOwnerName}
}
