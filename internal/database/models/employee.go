package models

// Employee represents a person who can hold assets
type Employee struct {
	BaseModel
	Name   string  `json:"name" gorm:"size:200;not null;index"`
	Role   string  `json:"role" gorm:"size:120"` // job title
	RoleID *string `json:"role_id,omitempty" gorm:"size:64;index"`
	Region Region  `json:"region" gorm:"size:20;not null;index"`
	TeamID *string `json:"team_id,omitempty" gorm:"size:64;index"`
	Active bool    `json:"active" gorm:"not null"`
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
