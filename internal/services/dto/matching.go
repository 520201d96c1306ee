package dto

import "procasa_backend/internal/suggest"

type ClarifyRequest struct {
	Description string `json:"description" validate:"required,min=5"`
}

type ClarifyResponse struct {
	Questions       []suggest.ClarificationQuestion `json:"questions"`
	SuggestedBudget suggest.BudgetRange             `json:"suggested_budget"`
}

type RefineBudgetRequest struct {
	Description string                     `json:"description" validate:"required,min=5"`
	Answers     []suggest.AnsweredQuestion `json:"answers"`
}

type RefineBudgetResponse struct {
	Budget *suggest.BudgetRange `json:"budget,omitempty"`
	// Superseded is true when a newer refinement for the same session
	// arrived during the quiet period; the caller should ignore this reply.
	Superseded bool `json:"superseded"`
}

type RankRequest struct {
	Description string  `json:"description" validate:"required,min=5"`
	City        string  `json:"city"`
	BudgetMin   float64 `json:"budget_min"`
	BudgetMax   float64 `json:"budget_max"`
}

type RankedMatch struct {
	ProID    string `json:"pro_id"`
	Score    int    `json:"score"`
	Fallback bool   `json:"fallback,omitempty"`
}

type RankResponse struct {
	Matches []RankedMatch `json:"matches"`
}
