package models

import "time"

type Subscription struct {
	BaseModel
	ProfessionalID string           `gorm:"not null;uniqueIndex"`
	Plan           SubscriptionPlan `gorm:"type:varchar(20);default:'BASE'"`
	ExpiryDate     *time.Time
	IsTrialUsed    bool `gorm:"default:false"`
}

// IsActive reports whether the plan currently unlocks paid features.
// BASE never does, regardless of expiry.
func (s *Subscription) IsActive(now time.Time) bool {
	if s == nil || s.Plan == PlanBase {
		return false
	}
	if s.ExpiryDate == nil {
		return false
	}
	return s.ExpiryDate.After(now)
}

// PlanDuration returns the paid period granted by an upgrade.
func PlanDuration(plan SubscriptionPlan) time.Duration {
	switch plan {
	case PlanTrial:
		return 7 * 24 * time.Hour
	case PlanMonthly:
		return 30 * 24 * time.Hour
	case PlanAnnual:
		return 365 * 24 * time.Hour
	}
	return 0
}
