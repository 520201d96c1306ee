package dto

import "time"

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type ReplyToReviewRequest struct {
	Comment      string `json:"comment" validate:"required"`
	ClientRating int    `json:"client_rating" validate:"required,min=1,max=5"`
}

type ReviewReply struct {
	Comment      string    `json:"comment"`
	ClientRating int       `json:"client_rating"`
	Date         time.Time `json:"date"`
}

type ReviewResponse struct {
	ID             string       `json:"id"`
	ProfessionalID string       `json:"professional_id"`
	ClientID       string       `json:"client_id"`
	ClientName     string       `json:"client_name"`
	RequestID      *string      `json:"request_id,omitempty"`
	JobDescription string       `json:"job_description"`
	Rating         int          `json:"rating"`
	Comment        string       `json:"comment"`
	IsConfirmed    bool         `json:"is_confirmed"`
	Reply          *ReviewReply `json:"reply,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
