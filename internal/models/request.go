package models

import (
	"gorm.io/datatypes"
)

// JobRequest is the unit of work a client posts and professionals respond to.
// The three ID sets are stored as jsonb string arrays; Version backs the
// optimistic-concurrency discipline on every mutation.
type JobRequest struct {
	BaseModel
	ClientID      string `gorm:"not null;index"`
	ClientName    string
	ClientAvatar  string
	ClientRanking float64

	Description string `gorm:"not null"`
	Category    *Category
	City        string
	BudgetMin   float64
	BudgetMax   float64

	SelectedProIDs datatypes.JSON `gorm:"type:jsonb"`
	AcceptedProIDs datatypes.JSON `gorm:"type:jsonb"`
	RejectedProIDs datatypes.JSON `gorm:"type:jsonb"`
	HiredProID     *string        `gorm:"index"`

	Status          JobStatus `gorm:"type:varchar(20);default:'PENDING'"`
	ServiceReceived bool      `gorm:"default:false"`
	HasFeedback     bool      `gorm:"default:false"`

	Clarifications datatypes.JSON `gorm:"type:jsonb"`

	Version int `gorm:"not null;default:1"`
}
