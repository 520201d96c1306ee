package dto

import (
	"time"

	"procasa_backend/internal/models"
)

type ClarificationPair struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

type CreateRequestRequest struct {
	Description    string              `json:"description" validate:"required,min=5"`
	City           string              `json:"city" validate:"required"`
	Category       *string             `json:"category,omitempty"`
	BudgetMin      float64             `json:"budget_min" validate:"min=0"`
	BudgetMax      float64             `json:"budget_max" validate:"budget_range"`
	SelectedProIDs []string            `json:"selected_pro_ids" validate:"required,min=1,dive,required"`
	Clarifications []ClarificationPair `json:"clarifications,omitempty"`
}

// Budget implements the budget_range validation rule.
func (r CreateRequestRequest) Budget() (min, max float64) {
	return r.BudgetMin, r.BudgetMax
}

type HireRequest struct {
	ProID string `json:"pro_id" validate:"required"`
}

type RequestResponse struct {
	ID              string              `json:"id"`
	ClientID        string              `json:"client_id"`
	ClientName      string              `json:"client_name,omitempty"`
	ClientAvatar    string              `json:"client_avatar,omitempty"`
	ClientRanking   float64             `json:"client_ranking,omitempty"`
	Description     string              `json:"description"`
	Category        *models.Category    `json:"category,omitempty"`
	City            string              `json:"city"`
	BudgetMin       float64             `json:"budget_min"`
	BudgetMax       float64             `json:"budget_max"`
	SelectedProIDs  []string            `json:"selected_pro_ids"`
	AcceptedProIDs  []string            `json:"accepted_pro_ids"`
	RejectedProIDs  []string            `json:"rejected_pro_ids"`
	HiredProID      *string             `json:"hired_pro_id,omitempty"`
	Status          models.JobStatus    `json:"status"`
	ServiceReceived bool                `json:"service_received"`
	HasFeedback     bool                `json:"has_feedback"`
	Clarifications  []ClarificationPair `json:"clarifications,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}
