package models

import (
	"github.com/shopspring/decimal"
)

// Asset represents a piece of company-owned equipment
type Asset struct {
	BaseModel
	Type              AssetType       `json:"type" gorm:"size:40;not null;index" validate:"required,max=40"`
	Brand             string          `json:"brand" gorm:"size:100;not null" validate:"required,max=100"`
	AssetTag          *string         `json:"asset_tag,omitempty" gorm:"size:100;index"`
	PrimaryID         *string         `json:"primary_id,omitempty" gorm:"size:120;uniqueIndex"` // serial number or IMEI
	Status            AssetStatus     `json:"status" gorm:"size:30;not null;index"`
	PhysicalCondition AssetCondition  `json:"physical_condition" gorm:"size:40;not null"`
	Color             string          `json:"color" gorm:"size:60"`
	Details           string          `json:"details" gorm:"type:text"`
	Value             decimal.Decimal `json:"value" gorm:"type:numeric(14,2);not null;default:0"`
	CurrentOwnerType  CustodianKind   `json:"current_owner_type" gorm:"size:30;not null;index"`
	CurrentOwnerID    string          `json:"current_owner_id" gorm:"size:64;not null;index"`
	CurrentOwnerName  string          `json:"current_owner_name" gorm:"size:200;not null"`
	Region            Region          `json:"region" gorm:"size:20;index"`
	Revision          int64           `json:"revision" gorm:"not null;default:1"`
}

// TableName returns the table name for Asset
func (Asset) TableName() string {
	return "assets"
}

// Holder returns the asset's current custodian
func (a *Asset) Holder() CustodianRef {
	return CustodianRef{
		Kind: a.CurrentOwnerType,
		ID:   a.CurrentOwnerID,
		Name: a.CurrentOwnerName,
	}
}

// AssignTo sets the custodian columns from a resolved reference
func (a *Asset) AssignTo(ref CustodianRef) {
	a.CurrentOwnerType = ref.Kind
	a.CurrentOwnerID = ref.ID
	a.CurrentOwnerName = ref.Name
}
