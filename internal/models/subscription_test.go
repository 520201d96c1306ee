package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionIsActive(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name string
		sub  *Subscription
		want bool
	}{
		{"nil subscription", nil, false},
		{"base plan with future expiry", &Subscription{Plan: PlanBase, ExpiryDate: &future}, false},
		{"paid plan without expiry", &Subscription{Plan: PlanMonthly}, false},
		{"paid plan expired", &Subscription{Plan: PlanMonthly, ExpiryDate: &past}, false},
		{"paid plan current", &Subscription{Plan: PlanMonthly, ExpiryDate: &future}, true},
		{"trial current", &Subscription{Plan: PlanTrial, ExpiryDate: &future}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sub.IsActive(now))
		})
	}
}

func TestPlanDuration(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, PlanDuration(PlanTrial))
	assert.Equal(t, 30*24*time.Hour, PlanDuration(PlanMonthly))
	assert.Equal(t, 365*24*time.Hour, PlanDuration(PlanAnnual))
	assert.Equal(t, time.Duration(0), PlanDuration(PlanBase))
}
