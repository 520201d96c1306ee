package models

import "time"

// Review is client feedback on a completed job. It stays invisible to the
// public (and to the ranking) until the professional confirms it.
type Review struct {
	BaseModel
	ProfessionalID string  `gorm:"not null;index"`
	ClientID       string  `gorm:"not null;index"`
	RequestID      *string `gorm:"index"`

	ClientName     string
	JobDescription string
	Rating         int `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment        string
	IsConfirmed    bool `gorm:"default:false"`

	// Professional reply with a counter-rating of the client.
	ReplyComment      *string
	ReplyClientRating *int
	ReplyDate         *time.Time
}
