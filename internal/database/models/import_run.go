package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportRun is an analyzed spreadsheet import awaiting commit
type ImportRun struct {
	BaseModel
	FileName      string         `json:"file_name" gorm:"size:255"`
	Status        ImportStatus   `json:"status" gorm:"size:20;not null;index"`
	NewCount      int            `json:"new_count"`
	UpdateCount   int            `json:"update_count"`
	RejectedCount int            `json:"rejected_count"`
	Rows          datatypes.JSON `json:"rows" gorm:"type:jsonb"`
	Rejected      datatypes.JSON `json:"rejected" gorm:"type:jsonb"`
	Error         string         `json:"error,omitempty" gorm:"type:text"`
	CreatedBy     string         `json:"created_by" gorm:"size:200"`
	CommittedAt   *time.Time     `json:"committed_at,omitempty"`
}

// TableName returns the table name for ImportRun
func (ImportRun) TableName() string {
	return "import_runs"
}
