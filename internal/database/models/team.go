package models

// Team represents a sales or support team within a region
type Team struct {
	BaseModel
	Name     string  `json:"name" gorm:"size:150;not null" validate:"required,min=1,max=150"`
	Region   Region  `json:"region" gorm:"size:20;not null;index"`
	Channel  Channel `json:"channel" gorm:"size:40;not null"`
	LeaderID *string `json:"leader_id,omitempty" gorm:"size:64;index"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
