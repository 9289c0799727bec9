package models

// Role represents a job position that can hold assets while vacant
type Role struct {
	BaseModel
	Code        string     `json:"code" gorm:"size:60;not null;uniqueIndex"`
	Description string     `json:"description" gorm:"size:200"`
	Region      Region     `json:"region" gorm:"size:20;not null;index"`
	TeamID      *string    `json:"team_id,omitempty" gorm:"size:64;index"`
	Status      RoleStatus `json:"status" gorm:"size:20;not null;index"`
}

// TableName returns the table name for Role
func (Role) TableName() string {
	return "roles"
}
