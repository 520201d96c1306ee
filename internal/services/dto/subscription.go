package dto

import "time"

type UpgradeSubscriptionRequest struct {
	Plan string `json:"plan" validate:"required,oneof=TRIAL MONTHLY ANNUAL"`
}

type SubscriptionStatus struct {
	Plan        string     `json:"plan"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	IsTrialUsed bool       `json:"is_trial_used"`
	Active      bool       `json:"active"`
}
